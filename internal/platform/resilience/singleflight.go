package resilience

import (
	"context"
	"sync"
)

// Group deduplicates concurrent calls for the same key and hands every caller
// the shared result.
type Group[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

type call[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Do runs fn once per in-flight key. shared is true for callers that waited on
// another caller's execution.
func (g *Group[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	c, leader := g.join(key)
	if !leader {
		<-c.done
		return c.val, c.err, true
	}

	g.run(key, c, fn)
	return c.val, c.err, false
}

// DoContext is Do for context-aware work. The shared call runs on a context
// detached from any single caller's cancellation, so fn must bound itself
// with a timeout. Each caller stops waiting when its own ctx is done.
func (g *Group[T]) DoContext(ctx context.Context, key string, fn func(context.Context) (T, error)) (val T, err error, shared bool) {
	c, leader := g.join(key)
	if leader {
		detached := context.WithoutCancel(ctx)
		go g.run(key, c, func() (T, error) { return fn(detached) })
	}

	select {
	case <-c.done:
		return c.val, c.err, !leader
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err(), !leader
	}
}

// InFlight reports how many keys are currently being loaded.
func (g *Group[T]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *Group[T]) join(key string) (*call[T], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}
	if c, ok := g.calls[key]; ok {
		return c, false
	}

	c := &call[T]{done: make(chan struct{})}
	g.calls[key] = c
	return c, true
}

func (g *Group[T]) run(key string, c *call[T], fn func() (T, error)) {
	defer func() {
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn()
}
