package steps

import (
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/chain"
)

type flagStep struct {
	name      string
	condition *template.Template
	key       string
	value     any
	logger    *slog.Logger
}

// NewFlagStep creates a step that marks the record when its condition holds
// and continues either way.
func NewFlagStep(name string, cfg *api.FlagConfig, logger *slog.Logger) (chain.Step[Record], error) {
	if cfg == nil {
		return nil, fmt.Errorf("flag config is required")
	}

	cond, err := parseTemplate(name+".condition", cfg.Condition)
	if err != nil {
		return nil, fmt.Errorf("condition: %w", err)
	}

	value := cfg.Value
	if value == nil {
		value = true
	}

	return &flagStep{
		name:      name,
		condition: cond,
		key:       cfg.Key,
		value:     value,
		logger:    logger,
	}, nil
}

func (s *flagStep) Name() string { return s.name }

func (s *flagStep) Handle(_ context.Context, rec Record, next chain.Next) error {
	ok, err := truthy(s.condition, rec)
	if err != nil {
		return err
	}
	if ok {
		v, err := literal(s.value)
		if err != nil {
			return err
		}
		rec[s.key] = v
		s.logger.Info("record flagged", "step", s.name, "key", s.key, "value", s.value)
	}
	return next()
}
