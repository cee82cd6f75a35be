package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hayeah/setcover"
	"github.com/hayeah/setcover/dataset"
	"github.com/hayeah/setcover/internal/metrics/chart"
)

// SolveCmd contains the arguments for the 'solve' subcommand
type SolveCmd struct {
	Algo    string        `arg:"-a,--algo" help:"Strategy: greedy-0 (hash sets) or greedy-1 (bit vectors)"`
	Format  string        `arg:"-f,--format" default:"text" help:"Output format: text or json"`
	Output  string        `arg:"-o,--output" help:"Write the result to this file instead of stdout"`
	Steps   bool          `arg:"--steps" help:"Chart the gain of every step (text format only)"`
	Verify  bool          `arg:"--verify" help:"Re-check that the cover is complete"`
	Timeout time.Duration `arg:"--timeout" help:"Give up after this long, e.g. 30s"`
	Query   string        `arg:"-q,--query" help:"SQL query for SQLite inputs, returning set and element columns"`
	Input   string        `arg:"positional,required" help:"Dataset: .csv, .json/.jsonc or .db/.sqlite"`
}

// SolveRunner encapsulates the state and behavior for the solve subcommand
type SolveRunner struct {
	Args      SolveCmd
	Strategy  setcover.Strategy
	Query     string
	Logger    *slog.Logger
	Stdout    io.Writer
	TermWidth func() int
}

// solveOutput is the json format
type solveOutput struct {
	Dataset  string `json:"dataset"`
	Verified bool   `json:"verified,omitempty"`
	*setcover.DynamicResult
}

// NewSolveRunner resolves the strategy and query from flags and config
func NewSolveRunner(cmd SolveCmd, cfg *Config, logger *slog.Logger, stdout io.Writer) (*SolveRunner, error) {
	strategy, err := resolveAlgo(cmd.Algo, cfg.Algo)
	if err != nil {
		return nil, err
	}
	switch cmd.Format {
	case "text", "json":
	case "":
		cmd.Format = "text"
	default:
		return nil, fmt.Errorf("unknown format %q, use 'text' or 'json'", cmd.Format)
	}

	query := cmd.Query
	if query == "" {
		query = cfg.SQLite.Query
	}

	return &SolveRunner{
		Args:      cmd,
		Strategy:  strategy,
		Query:     query,
		Logger:    logger,
		Stdout:    stdout,
		TermWidth: termWidth,
	}, nil
}

// Run loads the dataset, solves it and writes the cover
func (r *SolveRunner) Run(ctx context.Context) error {
	ds, err := dataset.Load(ctx, r.Args.Input, dataset.Options{Query: r.Query})
	if err != nil {
		return err
	}

	if r.Args.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Args.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := setcover.SolveDynamic(ctx, ds.Sets, r.Strategy, setcover.WithLogger(r.Logger))
	if err != nil {
		return fmt.Errorf("failed to solve %s: %w", ds.Name, err)
	}
	r.Logger.Info("solved",
		"dataset", ds.Name,
		"strategy", res.Strategy.String(),
		"sets", res.Sets,
		"universe", res.Universe,
		"cover", len(res.Cover),
		"footprint", humanize.IBytes(res.Footprint.Bytes),
		"elapsed", time.Since(start).Round(time.Microsecond),
	)

	out := solveOutput{Dataset: ds.Name, DynamicResult: res}
	if r.Args.Verify {
		if err := setcover.VerifyDynamic(ds.Sets, res.Cover); err != nil {
			return err
		}
		out.Verified = true
		r.Logger.Info("cover verified", "dataset", ds.Name)
	}

	w := r.Stdout
	if r.Args.Output != "" {
		f, err := os.Create(r.Args.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if r.Args.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return r.writeText(w, out)
}

func (r *SolveRunner) writeText(w io.Writer, out solveOutput) error {
	for _, id := range out.Cover {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	if !r.Args.Steps {
		return nil
	}

	steps := make([]chart.Step, len(out.Cover))
	for i, id := range out.Cover {
		steps[i] = chart.Step{Label: fmt.Sprint(id), Gain: out.Gains[i]}
	}
	fmt.Fprintln(w)
	return chart.PrintGains(steps, out.Universe, chart.DefaultOptions(r.TermWidth, w))
}
