package main

import (
	"log/slog"
	"testing"

	"github.com/hayeah/setcover/internal/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		assert := assert.New(t)
		path := writeFile(t, t.TempDir(), "custom.toml", `
algo = "greedy-1"
log_level = "debug"

[bench]
repeat = 10

[sqlite]
query = "SELECT a AS \"set\", b AS element FROM t"
`)
		cfg, err := LoadConfig(path)
		assert.NoError(err)
		assert.Equal("greedy-1", cfg.Algo)
		assert.Equal(10, cfg.Bench.Repeat)
		assert.Equal(1, cfg.Bench.Workers, "unset keys keep their defaults")
		assert.Equal(`SELECT a AS "set", b AS element FROM t`, cfg.SQLite.Query)

		level, err := cfg.Level()
		assert.NoError(err)
		assert.Equal(slog.LevelDebug, level)
	})

	t.Run("default file", func(t *testing.T) {
		assert := assert.New(t)
		dir := t.TempDir()
		t.Chdir(dir)

		cfg, err := LoadConfig("")
		assert.NoError(err)
		assert.Equal(&Config{Bench: BenchConfig{Repeat: 3, Workers: 1}}, cfg)

		writeFile(t, dir, DefaultConfigFile, `algo = "0"`)
		cfg, err = LoadConfig("")
		assert.NoError(err)
		assert.Equal("0", cfg.Algo)
	})

	t.Run("errors", func(t *testing.T) {
		assert := assert.New(t)
		dir := t.TempDir()

		_, err := LoadConfig(dir + "/nope.toml")
		assert.Error(err)

		_, err = LoadConfig(writeFile(t, dir, "broken.toml", "algo = "))
		assert.Error(err)

		cfg := &Config{LogLevel: "loud"}
		_, err = cfg.Level()
		assert.Error(err)
	})
}
