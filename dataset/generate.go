package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/hayeah/setcover"
)

// GenConfig describes a synthetic dataset.
type GenConfig struct {
	Sets     int
	Universe int
	MinSize  int
	MaxSize  int
	Seed     uint64
}

// Generate draws, for each of cfg.Sets sets, a size uniformly from
// [MinSize, MaxSize] and that many elements uniformly from [0, Universe).
// Repeated draws are kept, as the benchmark data has them too. The same
// config always yields the same dataset.
func Generate(cfg GenConfig) (*Dataset, error) {
	if cfg.Sets <= 0 || cfg.Universe <= 0 {
		return nil, fmt.Errorf("sets and universe must be positive, got %d and %d", cfg.Sets, cfg.Universe)
	}
	if cfg.MinSize <= 0 {
		cfg.MinSize = 1
	}
	if cfg.MaxSize < cfg.MinSize {
		return nil, fmt.Errorf("max size %d is below min size %d", cfg.MaxSize, cfg.MinSize)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	ds := &Dataset{
		Name: fmt.Sprintf("gen-%d-%d-seed%d", cfg.Sets, cfg.Universe, cfg.Seed),
		Sets: make([]setcover.DynamicSet, cfg.Sets),
	}
	for i := range ds.Sets {
		size := cfg.MinSize + rng.IntN(cfg.MaxSize-cfg.MinSize+1)
		elems := make([]any, size)
		for j := range elems {
			elems[j] = rng.Int64N(int64(cfg.Universe))
		}
		ds.Sets[i] = setcover.DynamicSet{ID: int64(i), Elements: elems}
		ds.Rows += size
	}
	return ds, nil
}
