package steps

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/mitchellh/copystructure"
)

// Record is the context value threaded through every step of a run.
type Record = map[string]any

// ErrDenied is returned by a require step configured to fail on deny.
var ErrDenied = errors.New("denied")

// noValue is what text/template prints for a missing map key.
const noValue = "<no value>"

func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, data Record) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// truthy evaluates a rendered condition. Empty output and missing keys are
// false.
func truthy(tmpl *template.Template, data Record) (bool, error) {
	out, err := execute(tmpl, data)
	if err != nil {
		return false, err
	}
	out = strings.TrimSpace(out)
	if out == "" || out == noValue {
		return false, nil
	}
	b, err := strconv.ParseBool(out)
	if err != nil {
		return false, fmt.Errorf("condition rendered %q, want a boolean", out)
	}
	return b, nil
}

// literal returns a deep copy of a configured value, so nested maps and
// lists assigned to one record are never shared with another.
func literal(v any) (any, error) {
	out, err := copystructure.Copy(v)
	if err != nil {
		return nil, fmt.Errorf("copying value: %w", err)
	}
	return out, nil
}
