package main

import (
	"github.com/hayeah/setcover"
	"github.com/hayeah/setcover/internal/metrics"
)

// ProvideStrategies returns the --algo strategies in flag order, the config
// strategy, or both strategies.
func ProvideStrategies(cmd BenchCmd, cfg *Config) ([]setcover.Strategy, error) {
	if len(cmd.Algo) == 0 {
		if cfg.Algo != "" {
			s, err := parseAlgo(cfg.Algo)
			if err != nil {
				return nil, err
			}
			return []setcover.Strategy{s}, nil
		}
		return []setcover.Strategy{setcover.HashSet, setcover.BitVector}, nil
	}

	var out []setcover.Strategy
	seen := map[setcover.Strategy]bool{}
	for _, name := range cmd.Algo {
		s, err := parseAlgo(name)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}

// ProvideBenchOptions merges flags over config values.
func ProvideBenchOptions(cmd BenchCmd, cfg *Config) BenchOptions {
	opts := BenchOptions{
		Repeat:  cfg.Bench.Repeat,
		Workers: cfg.Bench.Workers,
		Query:   cfg.SQLite.Query,
	}
	if cmd.Repeat > 0 {
		opts.Repeat = cmd.Repeat
	}
	if cmd.Workers > 0 {
		opts.Workers = cmd.Workers
	}
	if cmd.Query != "" {
		opts.Query = cmd.Query
	}
	opts.Repeat = max(opts.Repeat, 1)
	opts.Workers = max(opts.Workers, 1)
	return opts
}

func ProvideTimer() metrics.Timer { return metrics.WallTimer{} }

// ProvideRecorder constructs the Recorder worker pool.
func ProvideRecorder(timer metrics.Timer, opts BenchOptions) *metrics.Recorder {
	return metrics.NewRecorder(timer, opts.Workers)
}
