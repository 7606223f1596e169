package event

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Broker fans the events of one source out to its subscribers. A subscriber
// may restrict itself to some event types. Subscriptions end with Unsubscribe,
// after cancelling the subscription context so a pending delivery is dropped.
type Broker interface {
	Subscribe(ctx context.Context, types ...string) (EventSource, error)
	Unsubscribe(src EventSource) (hasMore bool, err error)
}

var ErrBrokerStopped = errors.New("Event broker is stopped")

type broker struct {
	ctx    context.Context
	source EventSource

	mu          sync.Mutex
	stopped     bool
	subscribers map[EventSource]*subscriber
}

type subscriber struct {
	ch    chan Event
	ctx   context.Context
	types map[string]bool
}

func (s *subscriber) wants(ev Event) bool {
	return len(s.types) == 0 || s.types[ev.Type]
}

// NewBroker delivers the events of source until ctx is done or source is
// closed. Every subscription is closed then.
func NewBroker(ctx context.Context, source EventSource) Broker {
	b := &broker{
		ctx:         ctx,
		source:      source,
		subscribers: map[EventSource]*subscriber{},
	}
	go b.run()
	return b
}

func (b *broker) run() {
	defer b.stop()

	for {
		select {
		case ev, ok := <-b.source:
			if !ok {
				return
			}
			b.deliver(ev)

		case <-b.ctx.Done():
			return
		}
	}
}

func (b *broker) deliver(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscribers {
		if !sub.wants(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		case <-sub.ctx.Done():
		case <-b.ctx.Done():
			return
		}
	}
}

func (b *broker) Subscribe(ctx context.Context, types ...string) (EventSource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return nil, ErrBrokerStopped
	}

	sub := &subscriber{ch: make(chan Event, 1), ctx: ctx}
	if len(types) > 0 {
		sub.types = make(map[string]bool, len(types))
		for _, t := range types {
			sub.types[t] = true
		}
	}
	b.subscribers[sub.ch] = sub
	return sub.ch, nil
}

func (b *broker) Unsubscribe(src EventSource) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subscribers[src]
	if !ok {
		return len(b.subscribers) > 0, errors.New("Unknown event subscription")
	}
	close(sub.ch)
	delete(b.subscribers, src)
	return len(b.subscribers) > 0, nil
}

func (b *broker) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	for src, sub := range b.subscribers {
		close(sub.ch)
		delete(b.subscribers, src)
	}
}
