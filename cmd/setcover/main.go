package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"
	"github.com/hayeah/setcover"
	"github.com/sahilm/fuzzy"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Config  string    `arg:"--config,env:SETCOVER_CONFIG" help:"TOML config file (default: ./setcover.toml if present)"`
	Verbose bool      `arg:"-v,--verbose" help:"Log every greedy step"`
	Solve   *SolveCmd `arg:"subcommand:solve" help:"Compute a greedy cover of a dataset"`
	Bench   *BenchCmd `arg:"subcommand:bench" help:"Time strategies across datasets"`
	Gen     *GenCmd   `arg:"subcommand:gen" help:"Write a synthetic CSV dataset"`
}

// Runner encapsulates the state and behavior for the CLI
type Runner struct {
	Args   Args
	Config *Config
	Logger *slog.Logger
	Stdout io.Writer
}

// NewRunner loads the config file and sets up logging
func NewRunner(args Args, stdout, stderr io.Writer) (*Runner, error) {
	cfg, err := LoadConfig(args.Config)
	if err != nil {
		return nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if args.Verbose {
		level = slog.LevelDebug
	}

	return &Runner{
		Args:   args,
		Config: cfg,
		Logger: NewLogger(stderr, level),
		Stdout: stdout,
	}, nil
}

// Run dispatches to the appropriate subcommand
func (r *Runner) Run(ctx context.Context) error {
	switch {
	case r.Args.Solve != nil:
		solveRunner, err := NewSolveRunner(*r.Args.Solve, r.Config, r.Logger, r.Stdout)
		if err != nil {
			return err
		}
		return solveRunner.Run(ctx)
	case r.Args.Bench != nil:
		benchRunner, err := NewBenchRunner(*r.Args.Bench, r.Config, r.Logger, r.Stdout)
		if err != nil {
			return err
		}
		return benchRunner.Run(ctx)
	case r.Args.Gen != nil:
		genRunner, err := NewGenRunner(*r.Args.Gen, r.Logger, r.Stdout)
		if err != nil {
			return err
		}
		return genRunner.Run()
	default:
		return fmt.Errorf("no subcommand specified, use 'solve', 'bench', or 'gen'")
	}
}

// resolveAlgo picks the strategy named by the flag, then the config file,
// then the default.
func resolveAlgo(flag, configured string) (setcover.Strategy, error) {
	switch {
	case flag != "":
		return parseAlgo(flag)
	case configured != "":
		return parseAlgo(configured)
	default:
		return setcover.DefaultStrategy, nil
	}
}

// parseAlgo is setcover.ParseStrategy with a suggestion for near misses.
func parseAlgo(name string) (setcover.Strategy, error) {
	s, err := setcover.ParseStrategy(name)
	if err == nil {
		return s, nil
	}
	if matches := fuzzy.Find(name, setcover.StrategyNames()); len(matches) > 0 {
		return 0, fmt.Errorf("%w (did you mean %q?)", err, matches[0].Str)
	}
	return 0, err
}

// exitCode is 2 when the input was at fault and 1 otherwise
func exitCode(err error) int {
	if setcover.IsInputError(err) {
		return 2
	}
	return 1
}

func main() {
	var args Args
	parser := arg.MustParse(&args)

	// If no subcommand is specified, show help
	if args.Solve == nil && args.Bench == nil && args.Gen == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	os.Exit(run(args))
}

func run(args Args) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner, err := NewRunner(args, os.Stdout, os.Stderr)
	if err == nil {
		err = runner.Run(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "setcover:", err)
		return exitCode(err)
	}
	return 0
}
