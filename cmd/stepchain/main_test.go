package main

import (
	"context"
	"errors"
	"testing"

	"github.com/systemstart/stepchain/pkg/processing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"all chains succeed", nil, 0},
		{"chain failure", errors.New("1 chain(s) failed"), exitChainErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var jobCtx context.Context
			code := run(func(ctx context.Context) ([]processing.Result, error) {
				jobCtx = ctx
				return []processing.Result{{Name: "alice", Record: map[string]any{"boarded": true}}}, tt.err
			})

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if jobCtx == nil {
				t.Fatal("expected job to run")
			}
			if jobCtx.Err() == nil {
				t.Error("expected signal context to be released when run returns")
			}
		})
	}
}
