package tsync

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrorGroupWithContext returns a group whose context is canceled once Wait returns,
// or as soon as a task fails when FailFast is set.
func ErrorGroupWithContext(ctx context.Context) (*ErrorGroup, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	return &ErrorGroup{ctx: ctx, cancel: cancel}, ctx
}

// ErrorGroup runs tasks like errgroup.Group but keeps every error instead of only the first one.
type ErrorGroup struct {
	sync.Mutex
	errors   []error
	eg       errgroup.Group
	ctx      context.Context
	cancel   context.CancelFunc
	failFast bool
}

func (g *ErrorGroup) SetLimit(n int) {
	g.eg.SetLimit(n)
}

// FailFast cancels the group context on the first failing task.
// Tasks that have not started yet are skipped.
func (g *ErrorGroup) FailFast() {
	g.failFast = true
}

func (g *ErrorGroup) Go(n func() error) {
	g.eg.Go(func() error {
		if g.failFast && g.ctx != nil && g.ctx.Err() != nil {
			g.Lock()
			defer g.Unlock()
			if len(g.errors) == 0 {
				g.errors = append(g.errors, g.ctx.Err())
			}
			return nil
		}

		if err := n(); err != nil {
			g.Lock()
			g.errors = append(g.errors, err)
			g.Unlock()

			if g.failFast && g.cancel != nil {
				g.cancel()
			}
		}
		return nil
	})
}

func (g *ErrorGroup) Wait() error {
	_ = g.eg.Wait()
	if g.cancel != nil {
		g.cancel()
	}

	g.Lock()
	defer g.Unlock()
	return errors.Join(g.errors...)
}
