package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/hayeah/setcover"
	"github.com/hayeah/setcover/dataset"
	"github.com/hayeah/setcover/internal/metrics"
	"github.com/hayeah/setcover/internal/metrics/chart"
	"golang.org/x/sync/errgroup"
)

// BenchCmd contains the arguments for the 'bench' subcommand
type BenchCmd struct {
	Algo    []string `arg:"-a,--algo,separate" help:"Strategy to run (repeatable; default: both)"`
	Repeat  int      `arg:"-n,--repeat" help:"Runs per strategy and dataset (default: 3)"`
	Workers int      `arg:"-w,--workers" help:"Concurrent runs; timings get noisier above 1"`
	Metrics string   `arg:"-m,--metrics" help:"Write metrics JSON ('-' = stdout)"`
	Chart   bool     `arg:"--chart" help:"Chart mean run times after the table"`
	Query   string   `arg:"-q,--query" help:"SQL query for SQLite inputs"`
	Inputs  []string `arg:"positional,required" help:"Datasets to benchmark"`
}

// BenchPipeline bundles what a benchmark run needs. Built by wire.
type BenchPipeline struct {
	Strategies []setcover.Strategy
	Options    BenchOptions
	Recorder   *metrics.Recorder
	Logger     *slog.Logger
}

// BenchOptions are the bench settings after merging flags and config
type BenchOptions struct {
	Repeat  int
	Workers int
	Query   string
}

// BenchRunner encapsulates the state and behavior for the bench subcommand
type BenchRunner struct {
	Args      BenchCmd
	Pipeline  *BenchPipeline
	Stdout    io.Writer
	TermWidth func() int
}

// NewBenchRunner creates and initializes a new BenchRunner
func NewBenchRunner(cmd BenchCmd, cfg *Config, logger *slog.Logger, stdout io.Writer) (*BenchRunner, error) {
	pipe, err := BuildBenchPipeline(cmd, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &BenchRunner{
		Args:      cmd,
		Pipeline:  pipe,
		Stdout:    stdout,
		TermWidth: termWidth,
	}, nil
}

// Run loads every input, times each strategy on each and prints a summary
func (r *BenchRunner) Run(ctx context.Context) error {
	p := r.Pipeline

	datasets, err := loadAll(ctx, r.Args.Inputs, p.Options.Query)
	if err != nil {
		// stop the idle workers
		_ = p.Recorder.Wait()
		return err
	}

	for i, ds := range datasets {
		key := r.Args.Inputs[i]
		p.Logger.Info("dataset loaded", "input", key, "sets", len(ds.Sets), "rows", humanize.Comma(int64(ds.Rows)))
		for _, s := range p.Strategies {
			for n := 0; n < p.Options.Repeat; n++ {
				p.Recorder.Submit(s.String(), key, benchJob(ctx, ds, s))
			}
		}
	}
	if err := p.Recorder.Wait(); err != nil {
		return err
	}
	for _, s := range p.Strategies {
		sum := p.Recorder.SumBy(s.String())
		p.Logger.Info("strategy done",
			"strategy", s.String(),
			"runs", sum.Runs,
			"total", time.Duration(sum.TotalNanos).Round(time.Microsecond),
		)
	}

	if err := r.writeTable(datasets); err != nil {
		return err
	}
	if r.Args.Chart {
		fmt.Fprintln(r.Stdout)
		if err := chart.PrintBench(p.Recorder, chart.DefaultOptions(r.TermWidth, r.Stdout)); err != nil {
			return err
		}
	}
	return r.writeMetrics()
}

// loadAll reads the inputs concurrently, keeping their order
func loadAll(ctx context.Context, inputs []string, query string) ([]*dataset.Dataset, error) {
	datasets := make([]*dataset.Dataset, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		g.Go(func() error {
			ds, err := dataset.Load(ctx, input, dataset.Options{Query: query})
			if err != nil {
				return err
			}
			datasets[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return datasets, nil
}

// benchJob solves ds once and checks the cover before reporting it
func benchJob(ctx context.Context, ds *dataset.Dataset, s setcover.Strategy) func() (metrics.Sample, error) {
	return func() (metrics.Sample, error) {
		res, err := setcover.SolveDynamic(ctx, ds.Sets, s)
		if err != nil {
			return metrics.Sample{}, err
		}
		if err := setcover.VerifyDynamic(ds.Sets, res.Cover); err != nil {
			return metrics.Sample{}, err
		}
		return metrics.Sample{Cover: len(res.Cover), FootprintBytes: res.Footprint.Bytes}, nil
	}
}

func (r *BenchRunner) writeTable(datasets []*dataset.Dataset) error {
	sets := make(map[string]int, len(datasets))
	for i, ds := range datasets {
		sets[r.Args.Inputs[i]] = len(ds.Sets)
	}

	items := r.Pipeline.Recorder.Items
	keys := make([]metrics.MetricKey, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Key != keys[j].Key {
			return keys[i].Key < keys[j].Key
		}
		return keys[i].Type < keys[j].Type
	})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STRATEGY", "DATASET", "SETS", "COVER", "BEST", "MEAN", "FOOTPRINT")
	for _, k := range keys {
		item := items[k]
		t.Row(
			k.Type,
			k.Key,
			humanize.Comma(int64(sets[k.Key])),
			strconv.Itoa(item.Cover),
			item.Best().Round(time.Microsecond).String(),
			item.Mean().Round(time.Microsecond).String(),
			humanize.IBytes(item.FootprintBytes),
		)
	}
	_, err := fmt.Fprintln(r.Stdout, t.Render())
	return err
}

func (r *BenchRunner) writeMetrics() error {
	switch r.Args.Metrics {
	case "":
		return nil
	case "-":
		return json.NewEncoder(r.Stdout).Encode(r.Pipeline.Recorder)
	default:
		data, err := json.MarshalIndent(r.Pipeline.Recorder, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(r.Args.Metrics, data, 0644); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		r.Pipeline.Logger.Info("metrics written", "path", r.Args.Metrics)
		return nil
	}
}
