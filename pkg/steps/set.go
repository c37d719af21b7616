package steps

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"text/template"

	"github.com/systemstart/stepchain/pkg/chain"
)

type setStep struct {
	name      string
	keys      []string
	literals  map[string]any
	templates map[string]*template.Template
}

// NewSetStep creates a step that assigns values to the record and always
// continues. String values are rendered as templates against the record.
func NewSetStep(name string, values map[string]any) (chain.Step[Record], error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("set requires at least one key")
	}

	s := &setStep{
		name:      name,
		keys:      slices.Sorted(maps.Keys(values)),
		literals:  make(map[string]any),
		templates: make(map[string]*template.Template),
	}
	for k, v := range values {
		text, ok := v.(string)
		if !ok {
			s.literals[k] = v
			continue
		}
		tmpl, err := parseTemplate(name+"."+k, text)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		s.templates[k] = tmpl
	}
	return s, nil
}

func (s *setStep) Name() string { return s.name }

func (s *setStep) Handle(_ context.Context, rec Record, next chain.Next) error {
	for _, k := range s.keys {
		if tmpl, ok := s.templates[k]; ok {
			out, err := execute(tmpl, rec)
			if err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			rec[k] = out
			continue
		}
		v, err := literal(s.literals[k])
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		rec[k] = v
	}
	return next()
}
