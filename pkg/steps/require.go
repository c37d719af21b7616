package steps

import (
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/chain"
)

type requireStep struct {
	name      string
	condition *template.Template
	message   *template.Template
	onDeny    string
	logger    *slog.Logger
}

// NewRequireStep creates a step that continues only when its condition holds.
// On deny it either halts the run or fails it, depending on cfg.OnDeny.
func NewRequireStep(name string, cfg *api.RequireConfig, logger *slog.Logger) (chain.Step[Record], error) {
	if cfg == nil {
		return nil, fmt.Errorf("require config is required")
	}

	cond, err := parseTemplate(name+".condition", cfg.Condition)
	if err != nil {
		return nil, fmt.Errorf("condition: %w", err)
	}

	text := cfg.Message
	if text == "" {
		text = "condition not met"
	}
	msg, err := parseTemplate(name+".message", text)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}

	onDeny := cfg.OnDeny
	if onDeny == "" {
		onDeny = api.OnDenyHalt
	}

	return &requireStep{
		name:      name,
		condition: cond,
		message:   msg,
		onDeny:    onDeny,
		logger:    logger,
	}, nil
}

func (s *requireStep) Name() string { return s.name }

func (s *requireStep) Handle(_ context.Context, rec Record, next chain.Next) error {
	ok, err := truthy(s.condition, rec)
	if err != nil {
		return err
	}
	if ok {
		return next()
	}

	reason, err := execute(s.message, rec)
	if err != nil {
		return err
	}

	if s.onDeny == api.OnDenyFail {
		return fmt.Errorf("%w: %s", ErrDenied, reason)
	}

	s.logger.Warn("chain halted", "step", s.name, "reason", reason)
	return nil
}
