package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/systemstart/stepchain/pkg/api"
	"github.com/systemstart/stepchain/pkg/logging"
	"github.com/systemstart/stepchain/pkg/processing"
)

var version = "dev"

const (
	_ = iota
	exitLoggingSetupFailed
	exitDotenvError
	exitNothingToRun
	exitInputDirectoryCheckFailed
	exitInputDirectoryNotADirectory
	exitLoadChainFailed
	exitLoadInstancesFailed
	exitLoadContextFailed
	exitChainErrors
	exitWriteResultsFailed
)

var (
	chainFile      string
	instancesFile  string
	inputDirectory string
	pattern        string
	contextFile    string
	maxDepth       int
	timeout        time.Duration
	loggingType    string
	logLevel       string
	showVersion    bool
)

func init() {
	flag.StringVar(
		&chainFile,
		"chain",
		"",
		"single .chain.yaml to run (non-recursive mode)")
	flag.StringVar(
		&instancesFile,
		"instances",
		"",
		"instances YAML file; runs -chain once per instance, concurrently")
	flag.StringVar(
		&inputDirectory,
		"input-directory",
		"",
		"directory to search for chain files")
	flag.StringVar(
		&pattern,
		"pattern",
		api.DefaultPattern,
		"glob used to discover chain files below -input-directory")
	flag.StringVar(
		&contextFile,
		"context-file",
		"",
		"global context YAML file")
	flag.IntVar(
		&maxDepth,
		"max-depth",
		-1,
		"max directory recursion depth (-1 = unlimited, 0 = root only)")
	flag.DurationVar(
		&timeout,
		"timeout",
		0,
		"per-run deadline for chains that do not set one (0 = wait forever)")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

// job runs the selected chains and returns their results.
type job func(ctx context.Context) ([]processing.Result, error)

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	logger, err := logging.Initialize(loggingType, logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitLoggingSetupFailed)
	}

	includeEnv()

	globalContext := loadGlobalContext()
	opts := processing.Options{Timeout: timeout, Logger: logger}

	os.Exit(run(selectJob(globalContext, opts)))
}

// run executes j with SIGINT cancellation and writes its results to stdout.
func run(j job) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := j(ctx)

	if err := processing.WriteResults(os.Stdout, results); err != nil {
		slog.Error("failed to write results", "error", err)
		return exitWriteResultsFailed
	}

	if runErr != nil {
		slog.Error("processing failed", "error", runErr)
		return exitChainErrors
	}

	slog.Info("done")
	return 0
}

// selectJob loads everything the chosen mode needs before any run starts.
func selectJob(globalContext map[string]any, opts processing.Options) job {
	switch {
	case chainFile != "":
		return singleChainJob(globalContext, opts)
	case inputDirectory != "":
		checkInputDirectory()
		return func(ctx context.Context) ([]processing.Result, error) {
			return processing.RunAll(ctx, inputDirectory, pattern, globalContext, maxDepth, opts)
		}
	default:
		slog.Error("either -chain or -input-directory must be set")
		os.Exit(exitNothingToRun)
		return nil
	}
}

func singleChainJob(globalContext map[string]any, opts processing.Options) job {
	c, err := api.LoadChain(chainFile)
	if err != nil {
		slog.Error("failed to load chain", "filename", chainFile, "error", err)
		os.Exit(exitLoadChainFailed)
	}

	if instancesFile != "" {
		instances, err := api.LoadInstances(instancesFile)
		if err != nil {
			slog.Error("failed to load instances", "filename", instancesFile, "error", err)
			os.Exit(exitLoadInstancesFailed)
		}
		return func(ctx context.Context) ([]processing.Result, error) {
			return processing.RunInstances(ctx, c, instances, globalContext, opts)
		}
	}

	return func(ctx context.Context) ([]processing.Result, error) {
		rec, err := processing.RunChain(ctx, c, globalContext, opts)
		res := processing.Result{Name: c.Name, Record: rec}
		if err != nil {
			res.Error = err.Error()
		}
		return []processing.Result{res}, err
	}
}

func loadGlobalContext() map[string]any {
	if contextFile == "" {
		return nil
	}

	ctx, err := processing.LoadContextFile(contextFile)
	if err != nil {
		slog.Error("failed to load context file", "filename", contextFile, "error", err)
		os.Exit(exitLoadContextFailed)
	}
	return ctx
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Info("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}

func checkInputDirectory() {
	st, err := os.Stat(inputDirectory)
	if err != nil {
		slog.Error("failed to check input directory", "directory", inputDirectory, "error", err)
		os.Exit(exitInputDirectoryCheckFailed)
	}

	if !st.IsDir() {
		slog.Error("-input-directory is not a directory", "directory", inputDirectory)
		os.Exit(exitInputDirectoryNotADirectory)
	}
}
