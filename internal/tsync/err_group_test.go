package tsync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestErrorGroup(t *testing.T) {
	t.Run("keeps every error", func(t *testing.T) {
		eg, _ := ErrorGroupWithContext(context.Background())
		errA := errors.New("a")
		errB := errors.New("b")

		eg.Go(func() error { return errA })
		eg.Go(func() error { return nil })
		eg.Go(func() error { return errB })

		err := eg.Wait()
		if !errors.Is(err, errA) || !errors.Is(err, errB) {
			t.Fatalf("got %v, want both errors", err)
		}
	})

	t.Run("no errors", func(t *testing.T) {
		eg, ctx := ErrorGroupWithContext(context.Background())
		eg.Go(func() error { return nil })

		if err := eg.Wait(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ctx.Err() == nil {
			t.Fatal("expected the context to be canceled after Wait")
		}
	})

	t.Run("fail fast skips remaining tasks", func(t *testing.T) {
		eg, ctx := ErrorGroupWithContext(context.Background())
		eg.SetLimit(1)
		eg.FailFast()

		errFirst := errors.New("first")
		var ran atomic.Int32
		eg.Go(func() error {
			ran.Add(1)
			return errFirst
		})
		for range 3 {
			eg.Go(func() error {
				ran.Add(1)
				return nil
			})
		}

		err := eg.Wait()
		if !errors.Is(err, errFirst) {
			t.Fatalf("got %v, want %v", err, errFirst)
		}
		if errors.Is(err, context.Canceled) {
			t.Fatalf("skipped tasks must not add errors: %v", err)
		}
		if n := ran.Load(); n != 1 {
			t.Fatalf("got %d tasks run, want 1", n)
		}
		if ctx.Err() == nil {
			t.Fatal("expected a canceled context")
		}
	})

	t.Run("fail fast with canceled parent", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		cancel()

		eg, _ := ErrorGroupWithContext(parent)
		eg.FailFast()
		eg.Go(func() error {
			t.Error("task must not run")
			return nil
		})

		if err := eg.Wait(); !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want %v", err, context.Canceled)
		}
	})
}
