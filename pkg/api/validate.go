package api

import (
	"fmt"
	"slices"
	"strings"
)

var validStepTypes = map[string]bool{
	StepTypeSet:     true,
	StepTypeRequire: true,
	StepTypeFlag:    true,
	StepTypeDelay:   true,
	StepTypeLog:     true,
	StepTypeFail:    true,
	StepTypeWrite:   true,
}

var validLevels = []string{LevelDebug, LevelInfo, LevelWarn, LevelError}

// Validate checks the chain configuration for errors.
func (c *ChainFile) Validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("chain has no steps")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	names := make(map[string]int)

	for i, step := range c.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if prev, exists := names[step.Name]; exists {
			return fmt.Errorf("step %d: duplicate step name %q (first defined at step %d)", i, step.Name, prev)
		}
		names[step.Name] = i

		if !validStepTypes[step.Type] {
			return fmt.Errorf("step %q: unknown type %q", step.Name, step.Type)
		}

		if err := validateStepConfig(step); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}

	return nil
}

func validateStepConfig(step StepConfig) error {
	switch step.Type {
	case StepTypeSet:
		if len(step.Set) == 0 {
			return fmt.Errorf("set requires at least one key")
		}
	case StepTypeRequire:
		return validateRequireConfig(step)
	case StepTypeFlag:
		return validateFlagConfig(step)
	case StepTypeDelay:
		if step.Delay == nil {
			return fmt.Errorf("delay config is required")
		}
		if step.Delay.Duration <= 0 {
			return fmt.Errorf("delay.duration must be positive")
		}
	case StepTypeLog:
		return validateLogConfig(step)
	case StepTypeFail:
		if step.Fail == nil || step.Fail.Message == "" {
			return fmt.Errorf("fail.message is required")
		}
	case StepTypeWrite:
		return validateWriteConfig(step)
	}
	return nil
}

func validateRequireConfig(step StepConfig) error {
	if step.Require == nil {
		return fmt.Errorf("require config is required")
	}
	if step.Require.Condition == "" {
		return fmt.Errorf("require.condition is required")
	}
	switch step.Require.OnDeny {
	case "", OnDenyHalt, OnDenyFail:
	default:
		return fmt.Errorf("require.onDeny %q is not valid (valid: %s, %s)", step.Require.OnDeny, OnDenyHalt, OnDenyFail)
	}
	return nil
}

func validateFlagConfig(step StepConfig) error {
	if step.Flag == nil {
		return fmt.Errorf("flag config is required")
	}
	if step.Flag.Condition == "" {
		return fmt.Errorf("flag.condition is required")
	}
	if step.Flag.Key == "" {
		return fmt.Errorf("flag.key is required")
	}
	return nil
}

func validateLogConfig(step StepConfig) error {
	if step.Log == nil || step.Log.Message == "" {
		return fmt.Errorf("log.message is required")
	}
	if step.Log.Level != "" && !slices.Contains(validLevels, step.Log.Level) {
		return fmt.Errorf("log.level %q is not valid (valid: %s)", step.Log.Level, strings.Join(validLevels, ", "))
	}
	return nil
}

func validateWriteConfig(step StepConfig) error {
	if step.Write == nil {
		return fmt.Errorf("write config is required")
	}
	if step.Write.Output == "" {
		return fmt.Errorf("write.output is required")
	}
	if step.Write.Template == "" {
		return fmt.Errorf("write.template is required")
	}
	return nil
}
