package steps

import (
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/chain"
)

type logStep struct {
	name    string
	message *template.Template
	level   slog.Level
	logger  *slog.Logger
}

// NewLogStep creates a pass-through step that logs a rendered message.
func NewLogStep(name string, cfg *api.LogConfig, logger *slog.Logger) (chain.Step[Record], error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config is required")
	}

	msg, err := parseTemplate(name+".message", cfg.Message)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}

	levelName := cfg.Level
	if levelName == "" {
		levelName = api.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("could not parse log level: %w", err)
	}

	return &logStep{name: name, message: msg, level: level, logger: logger}, nil
}

func (s *logStep) Name() string { return s.name }

func (s *logStep) Handle(ctx context.Context, rec Record, next chain.Next) error {
	out, err := execute(s.message, rec)
	if err != nil {
		return err
	}
	s.logger.Log(ctx, s.level, out, "step", s.name)
	return next()
}
