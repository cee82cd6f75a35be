//go:build wireinject

package main

import (
	"log/slog"

	"github.com/google/wire"
)

func BuildBenchPipeline(cmd BenchCmd, cfg *Config, logger *slog.Logger) (*BenchPipeline, error) {
	wire.Build(
		ProvideStrategies,
		ProvideBenchOptions,
		ProvideTimer,
		ProvideRecorder,
		wire.Struct(new(BenchPipeline), "Strategies", "Options", "Recorder", "Logger"),
	)
	return nil, nil
}
