package steps

import (
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/chain"
)

type failStep struct {
	name    string
	message *template.Template
}

// NewFailStep creates a step that fails the run with a rendered message.
func NewFailStep(name string, cfg *api.FailConfig) (chain.Step[Record], error) {
	if cfg == nil {
		return nil, fmt.Errorf("fail config is required")
	}
	msg, err := parseTemplate(name+".message", cfg.Message)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	return &failStep{name: name, message: msg}, nil
}

func (s *failStep) Name() string { return s.name }

func (s *failStep) Handle(_ context.Context, rec Record, _ chain.Next) error {
	out, err := execute(s.message, rec)
	if err != nil {
		return err
	}
	return errors.New(out)
}
