// Package greedy implements the greedy set cover selection loop on top of a
// tracker.Tracker. The loop is the same for every tracker strategy.
package greedy

import (
	"log/slog"

	"github.com/hayeah/setcover/internal/errs"
	"github.com/hayeah/setcover/internal/tracker"
)

// Step is one selection: the set's position and how many elements it newly covered.
type Step struct {
	Set  int
	Gain int
}

// Selector runs the greedy loop.
type Selector struct {
	Logger *slog.Logger
}

// Select repeatedly picks the surviving set with the largest gain until every
// element is covered. Candidates are scanned in position order and only a
// strictly larger gain replaces the current best, so ties go to the lowest
// position.
func (s *Selector) Select(t tracker.Tracker) ([]Step, error) {
	alive := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if t.Gain(i) > 0 {
			alive = append(alive, i)
		}
	}

	var steps []Step
	for t.Uncovered() > 0 {
		best, bestGain := -1, 0

		// Gains never grow, so a set at zero is dropped for good.
		n := 0
		for _, set := range alive {
			g := t.Gain(set)
			if g == 0 {
				t.Retire(set)
				continue
			}
			alive[n] = set
			n++
			if g > bestGain {
				best, bestGain = set, g
			}
		}
		alive = alive[:n]

		if best < 0 {
			return steps, errs.ErrInternalConsistency.New(
				"no surviving set covers any of the remaining uncovered elements")
		}

		covered := t.Select(best)
		if covered != bestGain {
			return steps, errs.ErrInternalConsistency.New("tracker gain disagrees with covered count")
		}
		steps = append(steps, Step{Set: best, Gain: covered})

		if s.Logger != nil {
			s.Logger.Debug("greedy step",
				"step", len(steps),
				"set", best,
				"gain", covered,
				"uncovered", t.Uncovered(),
				"candidates", len(alive)-1)
		}
	}
	return steps, nil
}
