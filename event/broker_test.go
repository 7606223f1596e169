package event

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func receive(src EventSource) (Event, bool) {
	select {
	case ev, ok := <-src:
		return ev, ok
	case <-time.After(time.Second):
		panic("Timeout waiting for event")
	}
}

func TestBroker(t *testing.T) {
	Convey("Broker", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		source := make(chan Event)
		broker := NewBroker(ctx, source)

		Convey("It should deliver every event to every subscriber", func() {
			first, err := broker.Subscribe(context.Background())
			So(err, ShouldBeNil)
			second, err := broker.Subscribe(context.Background())
			So(err, ShouldBeNil)

			source <- NewTypedEvent("source_replaced", "res")

			ev, ok := receive(first)
			So(ok, ShouldBeTrue)
			So(ev.Type, ShouldEqual, "source_replaced")
			ev, _ = receive(second)
			So(ev.Data, ShouldEqual, "res")
		})

		Convey("It should only deliver the requested event types", func() {
			added, err := broker.Subscribe(context.Background(), "folder_added")
			So(err, ShouldBeNil)

			source <- NewTypedEvent("source_replaced", "res")
			source <- NewTypedEvent("folder_added", "values-night")

			ev, ok := receive(added)
			So(ok, ShouldBeTrue)
			So(ev.Type, ShouldEqual, "folder_added")
			So(ev.Data, ShouldEqual, "values-night")
		})

		Convey("It should close a subscription on unsubscribe", func() {
			sub, _ := broker.Subscribe(context.Background())
			hasMore, err := broker.Unsubscribe(sub)
			So(err, ShouldBeNil)
			So(hasMore, ShouldBeFalse)

			_, ok := receive(sub)
			So(ok, ShouldBeFalse)

			_, err = broker.Unsubscribe(sub)
			So(err, ShouldNotBeNil)
		})

		Convey("It should skip subscribers whose context is done", func() {
			gone, goneCancel := context.WithCancel(context.Background())
			stale, _ := broker.Subscribe(gone)
			live, _ := broker.Subscribe(context.Background())
			goneCancel()

			// Fill the stale buffer so a delivery to it would block.
			source <- NewTypedEvent("folder_added", "values")
			source <- NewTypedEvent("folder_added", "values-en")

			ev, _ := receive(live)
			So(ev.Data, ShouldEqual, "values")
			ev, _ = receive(live)
			So(ev.Data, ShouldEqual, "values-en")
			So(stale, ShouldNotBeNil)
		})

		Convey("It should close subscriptions and refuse new ones once stopped", func() {
			sub, _ := broker.Subscribe(context.Background())
			close(source)

			_, ok := receive(sub)
			So(ok, ShouldBeFalse)

			_, err := broker.Subscribe(context.Background())
			So(err, ShouldEqual, ErrBrokerStopped)
		})
	})
}
