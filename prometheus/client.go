package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsMapStatus = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resconfig_http_requests_total",
		Help: "The total number of requests which were performed.",
	}, []string{"serviceName", "version", "method", "path", "status"})

	requestsMapCurrent = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "resconfig_http_requests_current",
		Help: "The current number of requests in course.",
	}, []string{"serviceName", "version", "method", "path"})

	requestsMapDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "resconfig_http_request_duration_seconds",
		Help: "The duration of the requests in seconds.",
	}, []string{"serviceName", "version", "method", "path"})
)

var client PrometheusClient

type PrometheusClient interface {
	OpenRequest(req RequestData)
	ObserveDuration(req RequestData, initTime time.Time)
	CloseRequest(req RequestData, status string)
}

type prometheusClient struct {
	serviceName, version string
}

type RequestData struct {
	Method, Path string
}

func (p *prometheusClient) OpenRequest(req RequestData) {
	requestsMapCurrent.With(p.labels(req)).Inc()
}

func (p *prometheusClient) ObserveDuration(req RequestData, initTime time.Time) {
	requestsMapDuration.With(p.labels(req)).Observe(time.Since(initTime).Seconds())
}

func (p *prometheusClient) CloseRequest(req RequestData, status string) {
	labels := p.labels(req)
	requestsMapCurrent.With(labels).Dec()

	labels["status"] = status
	requestsMapStatus.With(labels).Inc()
}

func (p *prometheusClient) labels(req RequestData) prometheus.Labels {
	return prometheus.Labels{"serviceName": p.serviceName, "version": p.version, "method": req.Method, "path": req.Path}
}

// InitClient registers every collector of the service. It must be called once,
// before the HTTP middleware is installed.
func InitClient(serviceName, version string) {
	if client != nil {
		panic("The client has already been initialized.")
	}

	prometheus.MustRegister(requestsMapStatus)
	prometheus.MustRegister(requestsMapCurrent)
	prometheus.MustRegister(requestsMapDuration)
	registerDomainMetrics()

	client = &prometheusClient{serviceName: serviceName, version: version}
}

func GetClient() PrometheusClient {
	if client == nil {
		panic("Init the prometheus client before access it")
	}
	return client
}

// Handler exposes the registered collectors.
func Handler() http.Handler {
	return promhttp.Handler()
}
