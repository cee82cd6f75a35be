package setcover

import (
	"fmt"

	"github.com/hayeah/setcover/internal/errs"
)

// Verify checks that cover names each set at most once, names only sets in
// sets, and that the named sets together contain every element of sets.
func Verify[K, E Key](sets []Set[K, E], cover []K) error {
	byID := make(map[K][]E, len(sets))
	for _, set := range sets {
		byID[set.ID] = set.Elements
	}
	return verify(byID, cover)
}

func verify[K, E comparable](byID map[K][]E, cover []K) error {
	universe := make(map[E]struct{})
	for _, elements := range byID {
		for _, el := range elements {
			universe[el] = struct{}{}
		}
	}

	chosen := make(map[K]struct{}, len(cover))
	for _, id := range cover {
		if _, dup := chosen[id]; dup {
			return errs.ErrInvalidCover.New(fmt.Sprintf("set %v selected more than once", id))
		}
		chosen[id] = struct{}{}

		elements, ok := byID[id]
		if !ok {
			return errs.ErrInvalidCover.New(fmt.Sprintf("unknown set %v", id))
		}
		for _, el := range elements {
			delete(universe, el)
		}
	}

	if len(universe) > 0 {
		for el := range universe {
			return errs.ErrInvalidCover.New(fmt.Sprintf("%d elements left uncovered, including %v", len(universe), el))
		}
	}
	return nil
}
