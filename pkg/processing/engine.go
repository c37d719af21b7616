package processing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/chain"
	"github.com/systemstart/stepchain/pkg/steps"
)

// Options configures how chains are built and run.
type Options struct {
	// Timeout bounds each run unless the chain file sets its own.
	// Zero means runs have no deadline.
	Timeout time.Duration
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// BuildExecutor turns a chain file into an executor over records.
func BuildExecutor(c *api.ChainFile, opts Options) (*chain.Executor[steps.Record], error) {
	timeout := opts.Timeout
	if c.Timeout > 0 {
		timeout = c.Timeout
	}
	logger := opts.logger().With("chain", c.Name)

	exec := chain.New[steps.Record](chain.WithTimeout(timeout), chain.WithLogger(logger))
	for _, cfg := range c.Steps {
		step, err := steps.NewStep(cfg, steps.Env{WorkDir: c.Dir, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("creating step %q: %w", cfg.Name, err)
		}
		exec.AddStep(step)
	}
	return exec, nil
}

// RunChain executes a single chain against its own context merged over
// globalContext and returns the final record.
func RunChain(ctx context.Context, c *api.ChainFile, globalContext map[string]any, opts Options) (steps.Record, error) {
	exec, err := BuildExecutor(c, opts)
	if err != nil {
		return nil, err
	}

	rec := MergeContext(globalContext, c.Context)
	opts.logger().Info("running chain", "chain", c.Name, "steps", len(c.Steps))

	out, err := exec.Run(ctx, rec)
	if err != nil {
		return out, fmt.Errorf("chain %q: %w", c.Name, err)
	}
	return out, nil
}

// RunInstances runs one chain concurrently over every instance. Each instance
// gets its own record: instance context over chain context over globalContext.
func RunInstances(ctx context.Context, c *api.ChainFile, cfg *api.InstancesConfig, globalContext map[string]any, opts Options) ([]Result, error) {
	exec, err := BuildExecutor(c, opts)
	if err != nil {
		return nil, err
	}

	base := MergeContext(globalContext, c.Context)
	inputs := make([]steps.Record, len(cfg.Instances))
	for i, inst := range cfg.Instances {
		inputs[i] = MergeContext(base, inst.Context)
	}

	logger := opts.logger()
	logger.Info("running instances", "chain", c.Name, "count", len(inputs))

	results := make([]Result, 0, len(inputs))
	var failed []string
	for i, o := range exec.RunAll(ctx, inputs) {
		name := cfg.Instances[i].Name
		res := Result{Name: name, Record: o.Value}
		if o.Err != nil {
			logger.Error("instance failed", "instance", name, "run", o.RunID, "error", o.Err)
			res.Error = o.Err.Error()
			failed = append(failed, name)
		} else {
			logger.Info("instance succeeded", "instance", name, "run", o.RunID)
		}
		results = append(results, res)
	}

	if len(failed) > 0 {
		return results, fmt.Errorf("%d instance(s) failed: %v", len(failed), failed)
	}
	return results, nil
}

// RunAll discovers chain files under root and runs each in turn.
func RunAll(ctx context.Context, root, pattern string, globalContext map[string]any, maxDepth int, opts Options) ([]Result, error) {
	logger := opts.logger()

	chains, err := DiscoverChains(root, pattern, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("discovering chains: %w", err)
	}

	if len(chains) == 0 {
		logger.Warn("no chain files found", "dir", root, "pattern", pattern)
		return nil, nil
	}

	logger.Info("discovered chains", "count", len(chains))

	results := make([]Result, 0, len(chains))
	var failed []string
	for _, c := range chains {
		logger.Info("executing chain", "path", c.FilePath)
		rec, cErr := RunChain(ctx, c, globalContext, opts)
		res := Result{Name: c.Name, Record: rec}
		if cErr != nil {
			logger.Error("chain failed", "path", c.FilePath, "error", cErr)
			res.Error = cErr.Error()
			failed = append(failed, c.FilePath)
		} else {
			logger.Info("chain succeeded", "path", c.FilePath)
		}
		results = append(results, res)
	}

	if len(failed) > 0 {
		return results, fmt.Errorf("%d chain(s) failed: %v", len(failed), failed)
	}

	return results, nil
}
