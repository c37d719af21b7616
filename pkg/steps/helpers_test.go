package steps

import (
	"context"
	"testing"

	"github.com/systemstart/stepchain/pkg/chain"
)

// handle invokes step once and reports whether it called next.
func handle(t *testing.T, step chain.Step[Record], rec Record) (bool, error) {
	t.Helper()
	var advanced bool
	err := step.Handle(context.Background(), rec, func() error {
		advanced = true
		return nil
	})
	return advanced, err
}
