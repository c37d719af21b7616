// Package chain runs an ordered list of steps against a shared context value.
//
// Each step receives the value and a Next continuation. Calling Next hands
// control to the following step; returning without calling it halts the run.
// Runs are independent: one Executor may serve many concurrent runs, each with
// its own value and cursor.
package chain

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Executor holds the ordered steps of a chain.
type Executor[C any] struct {
	mu    sync.RWMutex
	steps []Step[C]
	opts  options
}

// Outcome is the result of one run started by RunAll.
type Outcome[C any] struct {
	RunID uuid.UUID
	Value C
	Err   error
}

// New creates an empty Executor.
func New[C any](opts ...Option) *Executor[C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Executor[C]{opts: o}
}

// AddStep appends step. Steps run in the order they were added.
func (e *Executor[C]) AddStep(step Step[C]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.steps = append(e.steps, step)
}

// Use appends fn as a step named name.
func (e *Executor[C]) Use(name string, fn StepFunc[C]) {
	e.AddStep(Func(name, fn))
}

// Steps returns the names of the registered steps in execution order.
func (e *Executor[C]) Steps() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.steps))
	for _, s := range e.steps {
		names = append(names, s.Name())
	}
	return names
}

func (e *Executor[C]) snapshot() []Step[C] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.steps)
}

// Run executes the chain against c and returns c once the last step has
// called Next. A step error fails the run with a *StepError. If a step never
// calls Next, Run returns an error matching ErrStalled when ctx (or the
// configured timeout) ends.
//
// Run does not return before the first step's Handle has returned, so steps
// that call Next synchronously are done with c by then. A step that continues
// Next from another goroutine owns c until that goroutine's Next call returns.
func (e *Executor[C]) Run(ctx context.Context, c C) (C, error) {
	_, err := e.execute(ctx, c)
	return c, err
}

// RunAll starts one concurrent run per input and waits for all of them.
// Outcomes are returned in input order.
func (e *Executor[C]) RunAll(ctx context.Context, inputs []C) []Outcome[C] {
	outcomes := make([]Outcome[C], len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Go(func() {
			id, err := e.execute(ctx, in)
			outcomes[i] = Outcome[C]{RunID: id, Value: in, Err: err}
		})
	}
	wg.Wait()
	return outcomes
}

func (e *Executor[C]) execute(ctx context.Context, c C) (uuid.UUID, error) {
	if e.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.timeout)
		defer cancel()
	}

	r := newRun(ctx, e.snapshot(), c, e.opts.logger)
	r.logger.Debug("run started", "steps", len(r.steps))

	returned := make(chan struct{})
	go func() {
		defer close(returned)
		_ = r.dispatch(0)
	}()

	var err error
	select {
	case <-r.done:
		err = r.err
	case <-ctx.Done():
		err = r.stall(ctx.Err())
	}
	// The synchronous part of the chain may still be unwinding through c.
	<-returned

	if err != nil {
		r.logger.Warn("run failed", "error", err)
	} else {
		r.logger.Debug("run completed")
	}
	return r.id, err
}
