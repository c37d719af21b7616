package steps

import (
	"context"
	"time"

	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/chain"
)

type delayStep struct {
	name     string
	duration time.Duration
}

// NewDelayStep creates a step that waits before continuing, standing in for
// asynchronous work. A nil cfg continues immediately.
func NewDelayStep(name string, cfg *api.DelayConfig) chain.Step[Record] {
	s := &delayStep{name: name}
	if cfg != nil {
		s.duration = cfg.Duration
	}
	return s
}

func (s *delayStep) Name() string { return s.name }

func (s *delayStep) Handle(ctx context.Context, _ Record, next chain.Next) error {
	timer := time.NewTimer(s.duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return next()
}
