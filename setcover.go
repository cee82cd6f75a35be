// Package setcover approximates set cover with the classic greedy heuristic:
// keep picking the set that covers the most still-uncovered elements until
// the union of the picked sets equals the universe. The result is within a
// factor H(n) of the optimum, n being the universe size.
//
// Two interchangeable coverage trackers back the loop, see Strategy. Each
// call builds and owns its own state, so concurrent calls are safe.
package setcover

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hayeah/setcover/internal/errs"
	"github.com/hayeah/setcover/internal/greedy"
	"github.com/hayeah/setcover/internal/tracker"
	"github.com/hayeah/setcover/internal/universe"
)

// Key is the closed set of supported set id and element types.
type Key interface {
	~string | ~int64
}

// Set is one input set. Duplicate elements collapse to one membership.
type Set[K, E Key] struct {
	ID       K
	Elements []E
}

// Step records one greedy selection.
type Step[K Key] struct {
	ID   K   `json:"id"`
	Gain int `json:"gain"`
}

// Footprint is the tracker memory accounting, taken before the first
// selection when it is largest.
type Footprint = tracker.Footprint

// Result is the detailed outcome of a solve.
type Result[K Key] struct {
	Strategy  Strategy  `json:"strategy"`
	Cover     []K       `json:"cover"`
	Steps     []Step[K] `json:"steps"`
	Sets      int       `json:"sets"`
	Universe  int       `json:"universe"`
	Footprint Footprint `json:"footprint"`
}

// Option configures a solve.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger logs every greedy step at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Solve returns the ids of a greedy cover in selection order. Ties between
// equal gains go to the set that comes first in sets.
func Solve[K, E Key](sets []Set[K, E], strategy Strategy, opts ...Option) ([]K, error) {
	res, err := SolveDetailed(sets, strategy, opts...)
	if err != nil {
		return nil, err
	}
	return res.Cover, nil
}

// SolveMap solves a map input. Map iteration order is random, so sets are
// ordered by ascending id first to keep the result reproducible.
func SolveMap[K, E Key](sets map[K][]E, strategy Strategy, opts ...Option) ([]K, error) {
	ids := make([]K, 0, len(sets))
	for id := range sets {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	ordered := make([]Set[K, E], len(ids))
	for i, id := range ids {
		ordered[i] = Set[K, E]{ID: id, Elements: sets[id]}
	}
	return Solve(ordered, strategy, opts...)
}

// SolveDetailed is Solve, also returning the per-step gains and the tracker
// footprint.
func SolveDetailed[K, E Key](sets []Set[K, E], strategy Strategy, opts ...Option) (*Result[K], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	inputs := make([]universe.Input[K, E], len(sets))
	seen := make(map[K]struct{}, len(sets))
	for i, set := range sets {
		if _, dup := seen[set.ID]; dup {
			return nil, errs.ErrInvalidInputShape.New(fmt.Sprintf("duplicate set id %v", set.ID))
		}
		seen[set.ID] = struct{}{}
		inputs[i] = universe.Input[K, E](set)
	}

	idx, err := universe.Build(inputs)
	if err != nil {
		return nil, err
	}

	t, err := strategy.newTracker(idx.Members, idx.Size)
	if err != nil {
		return nil, err
	}
	res := &Result[K]{
		Strategy:  strategy,
		Sets:      idx.Len(),
		Universe:  idx.Size,
		Footprint: t.Footprint(),
	}
	// the tracker holds its own copy of the memberships now
	idx.Members = nil

	logger := o.logger
	if logger != nil {
		logger = logger.With("strategy", strategy.String())
		logger.Debug("solve", "sets", res.Sets, "universe", res.Universe, "memberships", idx.Memberships)
	}

	steps, err := (&greedy.Selector{Logger: logger}).Select(t)
	if err != nil {
		return nil, err
	}

	res.Cover = make([]K, len(steps))
	res.Steps = make([]Step[K], len(steps))
	for i, step := range steps {
		id := idx.IDs[step.Set]
		res.Cover[i] = id
		res.Steps[i] = Step[K]{ID: id, Gain: step.Gain}
	}
	return res, nil
}

// SolveContext runs SolveDetailed on its own goroutine and gives up when ctx
// is done. The abandoned solve runs to completion in the background and its
// result is dropped; the solver itself has no cancellation points.
func SolveContext[K, E Key](ctx context.Context, sets []Set[K, E], strategy Strategy, opts ...Option) (*Result[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type outcome struct {
		res *Result[K]
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := SolveDetailed(sets, strategy, opts...)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.res, o.err
	}
}
