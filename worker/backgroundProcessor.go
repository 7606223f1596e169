package worker

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vtex/go-resconfig/prometheus"
)

// BackgroundProcessor runs jobs one at a time in a background goroutine,
// refusing to schedule a key that is already queued or ran less than the backoff
// ago. A single job function receives the scheduled argument, so callers never
// hand over closures capturing request state.
type BackgroundProcessor interface {
	// Schedule enqueues a job for key unless one is queued, running or inside
	// its backoff. Returns true if the job was scheduled now.
	Schedule(key string, arg interface{}) bool

	// Pending returns the number of jobs waiting in the queue.
	Pending() int

	// Stop ends the background goroutine once the running job returns. Queued
	// jobs are dropped and nothing can be scheduled afterwards.
	Stop()
}

// JobFn processes one job and returns how long to wait before the next one.
type JobFn func(interface{}) time.Duration

func StartBackgroundProcessor(initialCapacity int, backoff time.Duration, processFunc JobFn) BackgroundProcessor {
	processor := &bgProcessor{
		jobQueue:    NewSyncQueue[*scheduledJob](initialCapacity),
		processFunc: processFunc,
		backoff:     backoff,
	}
	go processor.mainLoop()
	return processor
}

type bgProcessor struct {
	jobQueue      *SyncQueue[*scheduledJob]
	scheduledJobs sync.Map

	processFunc JobFn
	backoff     time.Duration

	stopOnce sync.Once
	stopped  atomic.Bool
}

type scheduledJob struct {
	key string
	arg interface{}

	scheduledTime time.Time
}

func (p *bgProcessor) Schedule(key string, arg interface{}) bool {
	if p.stopped.Load() {
		return false
	}
	now := time.Now()
	if _, alreadyScheduled := p.scheduledJobs.LoadOrStore(key, now); alreadyScheduled {
		return false
	}

	p.jobQueue.Enqueue(&scheduledJob{
		key:           key,
		arg:           arg,
		scheduledTime: now,
	})
	prometheus.SetRefreshQueueLength(p.jobQueue.Len())
	return true
}

func (p *bgProcessor) Pending() int {
	return p.jobQueue.Len()
}

func (p *bgProcessor) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		// A nil job wakes the loop up if the queue is empty.
		p.jobQueue.Enqueue(nil)
	})
}

func (p *bgProcessor) mainLoop() {
	defer recoverAndLog(nil)

	for {
		job := p.jobQueue.Dequeue()
		if job == nil || p.stopped.Load() {
			prometheus.SetRefreshQueueLength(0)
			return
		}
		prometheus.SetRefreshQueueLength(p.jobQueue.Len())
		time.Sleep(p.processOne(job))
	}
}

func (p *bgProcessor) processOne(job *scheduledJob) time.Duration {
	defer recoverAndLog(job)
	defer p.release(job)

	return p.processFunc(job.arg)
}

// release lets the key be scheduled again once its backoff, counted from the
// scheduling time, is over.
func (p *bgProcessor) release(job *scheduledJob) {
	remaining := p.backoff - time.Since(job.scheduledTime)
	if remaining <= 0 {
		p.scheduledJobs.Delete(job.key)
		return
	}
	time.AfterFunc(remaining, func() {
		p.scheduledJobs.Delete(job.key)
	})
}

func recoverAndLog(job *scheduledJob) {
	panicVal := recover()
	if panicVal == nil {
		return
	}

	logger := logrus.WithFields(logrus.Fields{
		"category":    "fatal_error",
		"code":        "panic",
		"source_file": "worker/backgroundProcessor",
		"panic_value": panicVal,
		"stack":       string(debug.Stack()),
	})
	if job != nil {
		logger = logger.WithFields(logrus.Fields{
			"job_key":      job.key,
			"job_argument": job.arg,
		})
	}
	logger.Errorf("Panic in background processor!")
}
