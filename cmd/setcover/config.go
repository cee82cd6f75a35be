package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is read from the working directory when --config is not given
const DefaultConfigFile = "setcover.toml"

// Config holds defaults that flags override.
//
//	algo = "greedy-0"
//	log_level = "debug"
//
//	[bench]
//	repeat = 5
//	workers = 2
//
//	[sqlite]
//	query = "SELECT team AS \"set\", player AS element FROM rosters"
type Config struct {
	Algo     string       `toml:"algo"`
	LogLevel string       `toml:"log_level"`
	Bench    BenchConfig  `toml:"bench"`
	SQLite   SQLiteConfig `toml:"sqlite"`
}

type BenchConfig struct {
	Repeat  int `toml:"repeat"`
	Workers int `toml:"workers"`
}

type SQLiteConfig struct {
	Query string `toml:"query"`
}

// LoadConfig decodes the TOML file at path. With an empty path it tries
// DefaultConfigFile and falls back to built-in defaults when that is missing.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Bench: BenchConfig{Repeat: 3, Workers: 1},
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Level parses log_level ("debug", "info", "warn", "error"); empty is info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
