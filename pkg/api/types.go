package api

import "time"

const (
	ChainFileSuffix = ".chain.yaml"
	DefaultPattern  = "**/*" + ChainFileSuffix

	StepTypeSet     = "set"
	StepTypeRequire = "require"
	StepTypeFlag    = "flag"
	StepTypeDelay   = "delay"
	StepTypeLog     = "log"
	StepTypeFail    = "fail"
	StepTypeWrite   = "write"

	OnDenyHalt = "halt"
	OnDenyFail = "fail"

	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ChainFile is the *.chain.yaml configuration format.
type ChainFile struct {
	Name    string         `yaml:"name"`
	Timeout time.Duration  `yaml:"timeout"`
	Context map[string]any `yaml:"context"`
	Steps   []StepConfig   `yaml:"steps"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// StepConfig defines a single step within a chain.
type StepConfig struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type"`
	Set     map[string]any `yaml:"set,omitempty"`
	Require *RequireConfig `yaml:"require,omitempty"`
	Flag    *FlagConfig    `yaml:"flag,omitempty"`
	Delay   *DelayConfig   `yaml:"delay,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
	Fail    *FailConfig    `yaml:"fail,omitempty"`
	Write   *WriteConfig   `yaml:"write,omitempty"`
}

// RequireConfig configures the require step. The chain only continues when
// Condition renders to true.
type RequireConfig struct {
	Condition string `yaml:"condition"`
	Message   string `yaml:"message"`
	OnDeny    string `yaml:"onDeny"` // halt (default) or fail
}

// FlagConfig configures the flag step.
type FlagConfig struct {
	Condition string `yaml:"condition"`
	Key       string `yaml:"key"`
	Value     any    `yaml:"value"`
}

// DelayConfig configures the delay step.
type DelayConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// LogConfig configures the log step.
type LogConfig struct {
	Message string `yaml:"message"`
	Level   string `yaml:"level"`
}

// FailConfig configures the fail step.
type FailConfig struct {
	Message string `yaml:"message"`
}

// WriteConfig configures the write step. Output is relative to the chain
// file's directory.
type WriteConfig struct {
	Output   string `yaml:"output"`
	Template string `yaml:"template"`
}

// InstancesConfig is the top-level instances file format.
type InstancesConfig struct {
	Instances []Instance `yaml:"instances"`
}

// Instance is one record run through a chain, concurrently with its siblings.
type Instance struct {
	Name    string         `yaml:"name"`
	Context map[string]any `yaml:"context"`
}
