package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hayeah/setcover/dataset"
)

// GenCmd contains the arguments for the 'gen' subcommand
type GenCmd struct {
	Sets     int    `arg:"--sets,required" help:"Number of sets"`
	Universe int    `arg:"--universe,required" help:"Elements are drawn from [0, universe)"`
	MinSize  int    `arg:"--min-size" default:"1" help:"Smallest set size"`
	MaxSize  int    `arg:"--max-size" help:"Largest set size (default: universe/10, at least min-size)"`
	Seed     uint64 `arg:"--seed" help:"Random seed; the same seed gives the same dataset"`
	Output   string `arg:"-o,--output,required" help:"Output file, CSV unless it ends in .json/.jsonc ('-' = CSV on stdout)"`
}

// GenRunner encapsulates the state and behavior for the gen subcommand
type GenRunner struct {
	Config dataset.GenConfig
	Output string
	Logger *slog.Logger
	Stdout io.Writer
}

// NewGenRunner creates and initializes a new GenRunner
func NewGenRunner(cmd GenCmd, logger *slog.Logger, stdout io.Writer) (*GenRunner, error) {
	if cmd.Output == "" {
		return nil, fmt.Errorf("--output is required")
	}
	maxSize := cmd.MaxSize
	if maxSize == 0 {
		maxSize = max(cmd.MinSize, cmd.Universe/10)
	}
	return &GenRunner{
		Config: dataset.GenConfig{
			Sets:     cmd.Sets,
			Universe: cmd.Universe,
			MinSize:  cmd.MinSize,
			MaxSize:  maxSize,
			Seed:     cmd.Seed,
		},
		Output: cmd.Output,
		Logger: logger,
		Stdout: stdout,
	}, nil
}

// Run generates the dataset and writes it as CSV or JSON
func (r *GenRunner) Run() error {
	ds, err := dataset.Generate(r.Config)
	if err != nil {
		return err
	}

	w := r.Stdout
	if r.Output != "-" {
		f, err := os.Create(r.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	write := ds.WriteCSV
	switch strings.ToLower(filepath.Ext(r.Output)) {
	case ".json", ".jsonc", ".hujson":
		write = ds.WriteJSON
	}
	if err := write(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.Output, err)
	}
	r.Logger.Info("dataset generated",
		"name", ds.Name,
		"sets", humanize.Comma(int64(len(ds.Sets))),
		"rows", humanize.Comma(int64(ds.Rows)),
		"output", r.Output,
	)
	return nil
}
