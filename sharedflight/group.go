// Package sharedflight coalesces concurrent calls for the same key, like
// singleflight, while handing the shared call a context that stays alive as
// long as any of the callers does.
package sharedflight

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type Group struct {
	mu           sync.RWMutex
	contexts     map[string]UnionContext
	singleFlight singleflight.Group
}

// Do runs fn once for every group of concurrent callers of key. The context fn
// receives is cancelled only when all of their contexts are.
func (g *Group) Do(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (v interface{}, err error, shared bool) {
	sharedCtx := g.getSharedContext(key, ctx)
	return g.singleFlight.Do(key, func() (interface{}, error) {
		return fn(sharedCtx)
	})
}

// Forget makes the next call for key run fn again, even if one is in flight.
func (g *Group) Forget(key string) {
	g.singleFlight.Forget(key)
}

func (g *Group) getSharedContext(key string, base context.Context) context.Context {
	g.mu.RLock()
	sharedCtx, ok := g.contexts[key]
	g.mu.RUnlock()
	if ok && sharedCtx.AddContext(base) {
		return sharedCtx
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.contexts == nil {
		g.contexts = map[string]UnionContext{}
	}

	sharedCtx, ok = g.contexts[key]
	if ok && sharedCtx.AddContext(base) {
		return sharedCtx
	}

	newCtx := NewUnionContext(base)
	g.contexts[key] = newCtx
	go func() {
		<-newCtx.Done()
		g.mu.Lock()
		if g.contexts[key] == newCtx {
			delete(g.contexts, key)
		}
		g.mu.Unlock()
	}()
	return newCtx
}
