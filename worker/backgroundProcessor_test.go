package worker

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackgroundProcessor(t *testing.T) {
	Convey("Does not schedule repeated jobs", t, withTimeout(func() {
		blocker := make(chan struct{})
		resultChan := make(chan bool, 1)
		processor := StartBackgroundProcessor(5, 0, func(interface{}) time.Duration {
			defer close(resultChan)
			<-blocker
			resultChan <- true
			return 0
		})

		So(processor.Schedule("res/app", nil), ShouldBeTrue)
		So(processor.Schedule("res/app", nil), ShouldBeFalse)
		close(blocker)

		So(<-resultChan, ShouldBeTrue)
		_, falseIfClosed := <-resultChan
		So(falseIfClosed, ShouldBeFalse)
	}))

	Convey("Schedules repeated jobs after executed", t, withTimeout(func() {
		resultChan := make(chan bool, 2)
		processor := StartBackgroundProcessor(5, 0, func(interface{}) time.Duration {
			resultChan <- true
			return 0
		})

		So(processor.Schedule("res/app", nil), ShouldBeTrue)
		So(<-resultChan, ShouldBeTrue)
		time.Sleep(10 * time.Millisecond)

		So(processor.Schedule("res/app", nil), ShouldBeTrue)
		So(<-resultChan, ShouldBeTrue)
	}))

	Convey("Recovers from panics in jobs", t, withTimeout(func() {
		done := make(chan struct{})
		executed := false
		processor := StartBackgroundProcessor(5, 0, func(interface{}) time.Duration {
			defer close(done)
			executed = true
			panic("omg! 😱")
		})

		So(processor.Schedule("res/app", nil), ShouldBeTrue)
		<-done

		So(executed, ShouldBeTrue)
	}))

	Convey("Passes arguments to jobs", t, withTimeout(func() {
		numJobs := 100
		wg := sync.WaitGroup{}
		wg.Add(numJobs)

		receivedArgs := map[int]bool{}
		processor := StartBackgroundProcessor(5, 0, func(idx interface{}) time.Duration {
			defer wg.Done()
			receivedArgs[idx.(int)] = true
			return 0
		})

		for i := 0; i < numJobs; i++ {
			So(processor.Schedule(fmt.Sprint("res/app", i), i), ShouldBeTrue)
		}
		wg.Wait()

		for i := 0; i < numJobs; i++ {
			So(receivedArgs[i], ShouldBeTrue)
		}
	}))

	Convey("Executes a single job at a time", t, withTimeout(func() {
		numJobs := 50
		wg := sync.WaitGroup{}
		wg.Add(numJobs)

		startTimes := make([]time.Time, numJobs)
		endTimes := make([]time.Time, numJobs)
		processor := StartBackgroundProcessor(numJobs, 0, func(idx interface{}) time.Duration {
			defer wg.Done()
			startTimes[idx.(int)] = time.Now()
			time.Sleep(5 * time.Millisecond)
			endTimes[idx.(int)] = time.Now()
			return 0
		})

		for i := 0; i < numJobs; i++ {
			So(processor.Schedule(fmt.Sprint("res/app", i), i), ShouldBeTrue)
		}
		wg.Wait()

		for i := 1; i < numJobs; i++ {
			timeAfterLast := startTimes[i].Sub(endTimes[i-1])
			So(timeAfterLast, ShouldBeGreaterThanOrEqualTo, 0)
		}
	}))

	Convey("Does wait interval between jobs", t, withTimeout(func() {
		numJobs := 50
		execInterval := 7 * time.Millisecond
		wg := sync.WaitGroup{}
		wg.Add(numJobs)

		execTimes := make([]time.Time, numJobs)
		processor := StartBackgroundProcessor(numJobs, 0, func(idx interface{}) time.Duration {
			defer wg.Done()
			execTimes[idx.(int)] = time.Now()
			return execInterval
		})

		for i := 0; i < numJobs; i++ {
			So(processor.Schedule(fmt.Sprint("res/app", i), i), ShouldBeTrue)
		}
		wg.Wait()

		for i := 1; i < numJobs; i++ {
			timeAfterLast := execTimes[i].Sub(execTimes[i-1])
			So(timeAfterLast, ShouldBeGreaterThanOrEqualTo, execInterval)
		}
	}))

	Convey("Does not reschedule a key inside its backoff", t, withTimeout(func() {
		resultChan := make(chan string, 2)
		processor := StartBackgroundProcessor(5, 50*time.Millisecond, func(dir interface{}) time.Duration {
			resultChan <- dir.(string)
			return 0
		})

		So(processor.Schedule("res/app", "res/app"), ShouldBeTrue)
		So(<-resultChan, ShouldEqual, "res/app")
		time.Sleep(10 * time.Millisecond)
		So(processor.Schedule("res/app", "res/app"), ShouldBeFalse)

		time.Sleep(60 * time.Millisecond)
		So(processor.Schedule("res/app", "res/app"), ShouldBeTrue)
		So(<-resultChan, ShouldEqual, "res/app")
	}))

	Convey("Reports pending jobs", t, withTimeout(func() {
		blocker := make(chan struct{})
		started := make(chan struct{}, 3)
		processor := StartBackgroundProcessor(5, 0, func(interface{}) time.Duration {
			started <- struct{}{}
			<-blocker
			return 0
		})

		So(processor.Schedule("res/a", nil), ShouldBeTrue)
		<-started
		So(processor.Schedule("res/b", nil), ShouldBeTrue)
		So(processor.Schedule("res/c", nil), ShouldBeTrue)
		So(processor.Pending(), ShouldEqual, 2)
		close(blocker)
	}))

	Convey("Stops after the running job", t, withTimeout(func() {
		blocker := make(chan struct{})
		started := make(chan struct{}, 1)
		var ran int32
		processor := StartBackgroundProcessor(5, 0, func(interface{}) time.Duration {
			atomic.AddInt32(&ran, 1)
			started <- struct{}{}
			<-blocker
			return 0
		})

		So(processor.Schedule("res/a", nil), ShouldBeTrue)
		<-started
		So(processor.Schedule("res/b", nil), ShouldBeTrue)
		processor.Stop()
		processor.Stop()
		close(blocker)

		So(processor.Schedule("res/c", nil), ShouldBeFalse)
		time.Sleep(20 * time.Millisecond)
		So(atomic.LoadInt32(&ran), ShouldEqual, 1)
	}))

	Convey("Stops while idle", t, withTimeout(func() {
		processor := StartBackgroundProcessor(5, 0, func(interface{}) time.Duration { return 0 })
		processor.Stop()
		So(processor.Schedule("res/a", nil), ShouldBeFalse)
	}))
}
