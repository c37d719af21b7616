package processing

import (
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/systemstart/stepchain/pkg/steps"
	"gopkg.in/yaml.v3"
)

// Result is the final state of one run, as written to the output stream.
type Result struct {
	Name   string       `yaml:"name"`
	Record steps.Record `yaml:"record"`
	Error  string       `yaml:"error,omitempty"`
}

// LoadContextFile reads a YAML file and returns it as a map.
func LoadContextFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}

	var ctx map[string]any
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing context file: %w", err)
	}

	if ctx == nil {
		ctx = make(map[string]any)
	}

	return ctx, nil
}

// MergeContext performs a shallow merge of local context over global context.
// Local keys override global keys at the top level. The result is always a
// new map, so records handed to separate runs never alias each other.
func MergeContext(global, local map[string]any) steps.Record {
	merged := make(steps.Record, len(global)+len(local))
	maps.Copy(merged, global)
	maps.Copy(merged, local)
	return merged
}

// WriteResults encodes results as a multi-document YAML stream.
func WriteResults(w io.Writer, results []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding result %q: %w", r.Name, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing results: %w", err)
	}
	return nil
}
