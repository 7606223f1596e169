package worker

import (
	"sync"
)

// SyncQueue is a channel-like queue with any number of concurrent senders and
// receivers. Enqueue never blocks for long: a full buffer is replaced by one
// twice as large. Order is only kept while no resize happens.
type SyncQueue[T any] struct {
	resizeLock sync.RWMutex
	queue      chan T
}

func NewSyncQueue[T any](initialCapacity int) *SyncQueue[T] {
	if initialCapacity <= 0 {
		panic("Sync queue capacity must be greater than zero")
	}
	return &SyncQueue[T]{
		queue: make(chan T, initialCapacity),
	}
}

func (q *SyncQueue[T]) Enqueue(item T) {
	for !q.tryEnqueue(item) {
		q.resize()
	}
}

func (q *SyncQueue[T]) Dequeue() T {
	for {
		if item, ok := <-q.queue; ok {
			return item
		}
		// A closed channel means a resize is in progress; wait for it and retry.
		q.resizeLock.RLock()
		q.resizeLock.RUnlock()
	}
}

func (q *SyncQueue[T]) Len() int {
	q.resizeLock.RLock()
	defer q.resizeLock.RUnlock()
	return len(q.queue)
}

func (q *SyncQueue[T]) tryEnqueue(item T) bool {
	q.resizeLock.RLock()
	defer q.resizeLock.RUnlock()
	select {
	case q.queue <- item:
		return true
	default:
		return false
	}
}

func (q *SyncQueue[T]) resize() {
	q.resizeLock.Lock()
	defer q.resizeLock.Unlock()

	if hasSpaceInBuffer(q.queue) {
		// Someone else resized first.
		return
	}

	close(q.queue)
	resized := make(chan T, 2*cap(q.queue))
	for item := range q.queue {
		resized <- item
	}
	q.queue = resized
}

// The buffer has space while a third of it is unused. Checking len < cap alone
// could spin between tryEnqueue and resize when a receiver races with us.
func hasSpaceInBuffer[T any](c <-chan T) bool {
	return 3*len(c) <= 2*cap(c)
}
