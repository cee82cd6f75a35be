package setcover

import (
	"fmt"

	"github.com/hayeah/setcover/internal/errs"
	"github.com/hayeah/setcover/internal/tracker"
)

// Strategy selects the coverage tracker the greedy loop runs on.
type Strategy int

const (
	// HashSet ("greedy-0") keeps a hash set of remaining elements per set.
	// Memory follows the remaining memberships; best for sparse universes.
	HashSet Strategy = iota
	// BitVector ("greedy-1") keeps a bit vector over the universe per set.
	// Gains are popcounts; best for dense universes.
	BitVector
)

// DefaultStrategy is used when no strategy is named.
const DefaultStrategy = BitVector

var strategyNames = map[Strategy]string{
	HashSet:   "greedy-0",
	BitVector: "greedy-1",
}

// StrategyNames lists the accepted strategy names.
func StrategyNames() []string {
	return []string{strategyNames[HashSet], strategyNames[BitVector]}
}

// ParseStrategy maps "greedy-0" / "greedy-1" (or "0" / "1") to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "greedy-0", "0":
		return HashSet, nil
	case "greedy-1", "1":
		return BitVector, nil
	default:
		return 0, errs.ErrUnknownStrategy.New(name)
	}
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, errs.ErrUnknownStrategy.New(s.String())
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so strategies can be
// read straight from flags and config files.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Strategy) newTracker(members [][]uint32, size int) (tracker.Tracker, error) {
	switch s {
	case HashSet:
		return tracker.NewHashSet(members, size), nil
	case BitVector:
		return tracker.NewBitVector(members, size), nil
	default:
		return nil, errs.ErrUnknownStrategy.New(s.String())
	}
}
