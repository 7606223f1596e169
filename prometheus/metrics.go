package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes of a resolution.
const (
	ResultMatched = "matched"
	ResultNoMatch = "no_match"
	ResultInvalid = "invalid"
)

// Collectors below are usable before InitClient; they are only exposed once
// registered.
var (
	resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resconfig_resolutions_total",
		Help: "The total number of best match resolutions, by outcome.",
	}, []string{"result"})

	resolutionCandidates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "resconfig_resolution_candidates",
		Help:    "The number of candidates offered to a resolution.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	parseFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resconfig_parse_failures_total",
		Help: "The total number of folder names or qualifier lists that failed to parse.",
	}, []string{"source"})

	indexedFolders = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "resconfig_indexed_folders",
		Help: "The number of resource folders currently indexed.",
	})

	refreshQueueLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "resconfig_refresh_queue_length",
		Help: "The number of index refresh jobs waiting to run.",
	})
)

func registerDomainMetrics() {
	prometheus.MustRegister(resolutions)
	prometheus.MustRegister(resolutionCandidates)
	prometheus.MustRegister(parseFailures)
	prometheus.MustRegister(indexedFolders)
	prometheus.MustRegister(refreshQueueLength)
}

func ObserveResolution(result string, candidates int) {
	resolutions.WithLabelValues(result).Inc()
	resolutionCandidates.Observe(float64(candidates))
}

func ObserveParseFailure(source string) {
	parseFailures.WithLabelValues(source).Inc()
}

func SetIndexedFolders(n int) {
	indexedFolders.Set(float64(n))
}

func SetRefreshQueueLength(n int) {
	refreshQueueLength.Set(float64(n))
}
