package sharedflight

import (
	"context"
	"sync"
	"time"
)

// UnionContext is done once every context added to it is done. Values are
// looked up in the added contexts, in order.
type UnionContext interface {
	context.Context
	// AddContext joins ctx to the union. It returns false if the union is
	// already done, in which case a new one must be created.
	AddContext(ctx context.Context) bool
}

type unionContext struct {
	inner  context.Context
	cancel func()

	mu      sync.RWMutex
	members []context.Context
	waiting []context.Context
}

func NewUnionContext(base context.Context) UnionContext {
	inner, cancel := context.WithCancel(context.Background())
	union := &unionContext{
		inner:   inner,
		cancel:  cancel,
		members: []context.Context{base},
		waiting: []context.Context{base},
	}
	go union.cancelLoop()
	return union
}

func (u *unionContext) Deadline() (time.Time, bool) {
	return u.inner.Deadline()
}

func (u *unionContext) Done() <-chan struct{} {
	return u.inner.Done()
}

func (u *unionContext) Err() error {
	return u.inner.Err()
}

func (u *unionContext) Value(key interface{}) interface{} {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, ctx := range u.members {
		if val := ctx.Value(key); val != nil {
			return val
		}
	}
	return nil
}

func (u *unionContext) AddContext(ctx context.Context) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Err() != nil {
		return false
	}
	u.members = append(u.members, ctx)
	u.waiting = append(u.waiting, ctx)
	return true
}

// cancelLoop waits on the added contexts one at a time and cancels the union
// when none is left alive.
func (u *unionContext) cancelLoop() {
	for {
		next := u.popWaiting()
		if next == nil {
			return
		}

		select {
		case <-u.Done():
			return
		case <-next.Done():
		}
	}
}

// popWaiting cancels the union under the lock when nothing is left to wait
// for, so AddContext can never join a union that is being cancelled.
func (u *unionContext) popWaiting() context.Context {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.waiting) == 0 {
		u.cancel()
		return nil
	}

	first := u.waiting[0]
	u.waiting[0] = nil
	u.waiting = u.waiting[1:]
	return first
}
