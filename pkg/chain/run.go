package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// run is one execution of a step list against one context value.
type run[C any] struct {
	id     uuid.UUID
	ctx    context.Context
	steps  []Step[C]
	value  C
	logger *slog.Logger

	// cursor counts the steps dispatched so far.
	cursor atomic.Int64

	once sync.Once
	done chan struct{}
	err  error
}

func newRun[C any](ctx context.Context, steps []Step[C], value C, logger *slog.Logger) *run[C] {
	id := uuid.New()
	return &run[C]{
		id:     id,
		ctx:    ctx,
		steps:  steps,
		value:  value,
		logger: logger.With("run", id.String()),
		done:   make(chan struct{}),
	}
}

func (r *run[C]) settle(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

func (r *run[C]) settled() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// dispatch invokes step i, handing it a Next bound to step i+1.
func (r *run[C]) dispatch(i int) error {
	if r.settled() {
		return ErrRunSettled
	}
	if err := r.ctx.Err(); err != nil {
		return err
	}

	if i >= len(r.steps) {
		r.logger.Debug("run reached end of chain", "steps", len(r.steps))
		r.settle(nil)
		return nil
	}

	step := r.steps[i]
	r.cursor.Store(int64(i + 1))

	var called atomic.Bool
	next := func() error {
		if !called.CompareAndSwap(false, true) {
			return fmt.Errorf("step %q: %w", step.Name(), ErrNextCalledTwice)
		}
		return r.dispatch(i + 1)
	}

	r.logger.Debug("running step", "step", step.Name(), "index", i)
	err := r.invoke(step, next)
	if err == nil {
		return nil
	}

	// Errors bubbling up through next already name the failing step. A
	// StepError from another run, such as a sub-chain, is still wrapped.
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.run != r.id {
		err = &StepError{Step: step.Name(), Index: i, Err: err, run: r.id}
	}
	r.settle(err)
	return err
}

func (r *run[C]) invoke(step Step[C], next Next) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrStepPanicked, p)
		}
	}()
	return step.Handle(r.ctx, r.value, next)
}

// stall settles the run after its context ended and returns the outcome,
// which may still be a result that raced the context.
func (r *run[C]) stall(cause error) error {
	at := "before first step"
	if n := int(r.cursor.Load()); n > 0 && n <= len(r.steps) {
		at = fmt.Sprintf("at step %q", r.steps[n-1].Name())
	}
	r.settle(fmt.Errorf("%w %s: %w", ErrStalled, at, cause))
	<-r.done
	return r.err
}
