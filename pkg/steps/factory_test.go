package steps

import (
	"testing"
	"time"

	"github.com/systemstart/stepchain/pkg/api"
)

func TestNewStep(t *testing.T) {
	tests := []struct {
		name    string
		cfg     api.StepConfig
		wantErr bool
	}{
		{
			name: "set step",
			cfg:  api.StepConfig{Name: "stamp", Type: api.StepTypeSet, Set: map[string]any{"k": "v"}},
		},
		{
			name: "require step",
			cfg:  api.StepConfig{Name: "ticket", Type: api.StepTypeRequire, Require: &api.RequireConfig{Condition: "{{ .ticket }}"}},
		},
		{
			name: "flag step",
			cfg:  api.StepConfig{Name: "vip", Type: api.StepTypeFlag, Flag: &api.FlagConfig{Condition: "true", Key: "vip"}},
		},
		{
			name: "delay step",
			cfg:  api.StepConfig{Name: "wait", Type: api.StepTypeDelay, Delay: &api.DelayConfig{Duration: time.Millisecond}},
		},
		{
			name: "log step",
			cfg:  api.StepConfig{Name: "say", Type: api.StepTypeLog, Log: &api.LogConfig{Message: "hi"}},
		},
		{
			name: "fail step",
			cfg:  api.StepConfig{Name: "abort", Type: api.StepTypeFail, Fail: &api.FailConfig{Message: "no"}},
		},
		{
			name: "write step",
			cfg:  api.StepConfig{Name: "save", Type: api.StepTypeWrite, Write: &api.WriteConfig{Output: "out.txt", Template: "ok"}},
		},
		{
			name:    "unknown type",
			cfg:     api.StepConfig{Name: "bad", Type: "unknown"},
			wantErr: true,
		},
		{
			name:    "missing config",
			cfg:     api.StepConfig{Name: "bad", Type: api.StepTypeRequire},
			wantErr: true,
		},
		{
			name:    "bad template",
			cfg:     api.StepConfig{Name: "bad", Type: api.StepTypeSet, Set: map[string]any{"k": "{{ .oops"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, err := NewStep(tt.cfg, Env{WorkDir: t.TempDir()})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStep() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if step == nil {
					t.Fatal("expected non-nil step")
				}
				if step.Name() != tt.cfg.Name {
					t.Errorf("Name() = %q, want %q", step.Name(), tt.cfg.Name)
				}
			}
		})
	}
}
