package chain

import "context"

// Next advances the run to the following step. It returns the first error
// raised by the remainder of the chain.
type Next func() error

// Step is a unit of processing in a chain. A step controls the flow by
// whether and when it calls next: not calling it halts the run.
type Step[C any] interface {
	Name() string
	Handle(ctx context.Context, c C, next Next) error
}

// StepFunc is the function form of Step.
type StepFunc[C any] func(ctx context.Context, c C, next Next) error

type funcStep[C any] struct {
	name string
	fn   StepFunc[C]
}

// Func wraps fn into a named Step.
func Func[C any](name string, fn StepFunc[C]) Step[C] {
	return &funcStep[C]{name: name, fn: fn}
}

func (s *funcStep[C]) Name() string { return s.name }

func (s *funcStep[C]) Handle(ctx context.Context, c C, next Next) error {
	return s.fn(ctx, c, next)
}
