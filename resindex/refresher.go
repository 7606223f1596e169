package resindex

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vtex/go-resconfig/worker"
)

const refreshQueueCapacity = 16

// Refresher rescans resource directories in the background. A root is never
// queued twice, and is not rescanned again within the backoff.
type Refresher struct {
	index     *Index
	processor worker.BackgroundProcessor
	timeout   time.Duration
}

func NewRefresher(index *Index, backoff, timeout time.Duration) *Refresher {
	r := &Refresher{index: index, timeout: timeout}
	r.processor = worker.StartBackgroundProcessor(refreshQueueCapacity, backoff, r.refresh)
	return r
}

// Schedule queues a rescan of root. It returns false when one is already
// pending or ran too recently.
func (r *Refresher) Schedule(root string) bool {
	return r.processor.Schedule(root, root)
}

func (r *Refresher) Pending() int {
	return r.processor.Pending()
}

// Stop drops pending rescans and refuses new ones.
func (r *Refresher) Stop() {
	r.processor.Stop()
}

func (r *Refresher) refresh(arg interface{}) time.Duration {
	root := arg.(string)

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger := logrus.WithFields(logrus.Fields{
		"category": indexLogCategory,
		"root":     root,
	})
	n, err := r.index.ScanDir(ctx, root)
	if err != nil {
		logger.WithField("code", "refresh_error").WithError(err).Error("Failed to refresh resource directory")
		return 0
	}
	logger.WithField("code", "refreshed").WithField("folders", n).Info("Refreshed resource directory")
	return 0
}
