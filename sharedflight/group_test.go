package sharedflight

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type ctxKey string

func TestGroup(t *testing.T) {
	Convey("Group", t, func() {
		group := &Group{}

		Convey("It should run a single scan for concurrent callers", func() {
			var calls int32
			release := make(chan struct{})
			started := make(chan struct{})

			scan := func(ctx context.Context) (interface{}, error) {
				if atomic.AddInt32(&calls, 1) == 1 {
					close(started)
				}
				<-release
				return "res", nil
			}

			wg := sync.WaitGroup{}
			results := make([]interface{}, 5)
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[0], _, _ = group.Do(context.Background(), "res", scan)
			}()
			<-started
			for i := 1; i < 5; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], _, _ = group.Do(context.Background(), "res", scan)
				}(i)
			}
			time.Sleep(10 * time.Millisecond)
			close(release)
			wg.Wait()

			So(atomic.LoadInt32(&calls), ShouldEqual, 1)
			for _, r := range results {
				So(r, ShouldEqual, "res")
			}
		})

		Convey("It should keep the shared context alive while a caller is", func() {
			first, cancelFirst := context.WithCancel(context.Background())
			second, cancelSecond := context.WithCancel(context.WithValue(context.Background(), ctxKey("dir"), "res"))
			defer cancelSecond()

			union := NewUnionContext(first)
			So(union.AddContext(second), ShouldBeTrue)
			So(union.Value(ctxKey("dir")), ShouldEqual, "res")

			cancelFirst()
			time.Sleep(10 * time.Millisecond)
			So(union.Err(), ShouldBeNil)

			cancelSecond()
			select {
			case <-union.Done():
			case <-time.After(time.Second):
				So("union context was not cancelled", ShouldBeEmpty)
			}
			So(union.Err(), ShouldNotBeNil)
			So(union.AddContext(context.Background()), ShouldBeFalse)
		})
	})
}
