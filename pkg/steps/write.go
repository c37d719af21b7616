package steps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/chain"
)

type writeStep struct {
	name    string
	output  *template.Template
	content *template.Template
	workDir string
	logger  *slog.Logger
}

// NewWriteStep creates a step that renders a template into a file below
// workDir and continues. The output path is itself a template.
func NewWriteStep(name string, cfg *api.WriteConfig, workDir string, logger *slog.Logger) (chain.Step[Record], error) {
	if cfg == nil {
		return nil, fmt.Errorf("write config is required")
	}

	output, err := parseTemplate(name+".output", cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	content, err := parseTemplate(name, cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	return &writeStep{
		name:    name,
		output:  output,
		content: content,
		workDir: workDir,
		logger:  logger,
	}, nil
}

func (s *writeStep) Name() string { return s.name }

func (s *writeStep) Handle(_ context.Context, rec Record, next chain.Next) error {
	rel, err := execute(s.output, rec)
	if err != nil {
		return fmt.Errorf("rendering output path: %w", err)
	}
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("output path %q escapes the chain directory", rel)
	}

	body, err := execute(s.content, rec)
	if err != nil {
		return err
	}

	outPath := filepath.Join(s.workDir, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("creating parent directories: %w", err)
	}

	if err := os.WriteFile(outPath, []byte(body), 0o600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	s.logger.Info("write step wrote file", "step", s.name, "output", rel)
	return next()
}
