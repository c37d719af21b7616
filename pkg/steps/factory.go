package steps

import (
	"fmt"
	"log/slog"

	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/chain"
)

// Env is what steps need from their surroundings at construction time.
type Env struct {
	WorkDir string // directory write steps resolve output paths against
	Logger  *slog.Logger
}

// NewStep creates a chain step from a StepConfig.
func NewStep(cfg api.StepConfig, env Env) (chain.Step[Record], error) {
	logger := env.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		step chain.Step[Record]
		err  error
	)
	switch cfg.Type {
	case api.StepTypeSet:
		step, err = NewSetStep(cfg.Name, cfg.Set)
	case api.StepTypeRequire:
		step, err = NewRequireStep(cfg.Name, cfg.Require, logger)
	case api.StepTypeFlag:
		step, err = NewFlagStep(cfg.Name, cfg.Flag, logger)
	case api.StepTypeDelay:
		step = NewDelayStep(cfg.Name, cfg.Delay)
	case api.StepTypeLog:
		step, err = NewLogStep(cfg.Name, cfg.Log, logger)
	case api.StepTypeFail:
		step, err = NewFailStep(cfg.Name, cfg.Fail)
	case api.StepTypeWrite:
		step, err = NewWriteStep(cfg.Name, cfg.Write, env.WorkDir, logger)
	default:
		return nil, fmt.Errorf("unknown step type: %s", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", cfg.Name, err)
	}
	return step, nil
}
