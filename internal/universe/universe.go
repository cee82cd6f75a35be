// Package universe turns caller sets into the dense form the trackers work on.
//
// Every distinct element gets an index in 0..Size-1, assigned in first-seen
// order across the sets as given. Set positions follow the input order, and
// that order is also the selector's tie-break order.
package universe

import (
	"math"

	"github.com/hayeah/setcover/internal/errs"
)

// Input is one caller set before indexing.
type Input[K any, E comparable] struct {
	ID       K
	Elements []E
}

// Index is the per-call dense representation of the input.
type Index[K any] struct {
	// IDs holds the caller ids by position.
	IDs []K
	// Members holds each set's deduplicated element indices, in first-seen order.
	Members [][]uint32
	// Size is the number of distinct elements.
	Size int
	// Memberships is the total of len(Members[i]).
	Memberships int
}

// Build indexes sets. Sets with no elements are kept, so positions still line
// up with the input, but they can never be selected.
func Build[K any, E comparable](sets []Input[K, E]) (*Index[K], error) {
	if len(sets) == 0 {
		return nil, errs.ErrEmptyInput.New("no sets given")
	}

	ids := make(map[E]uint32)
	idx := &Index[K]{
		IDs:     make([]K, len(sets)),
		Members: make([][]uint32, len(sets)),
	}

	// marks[e] == pos+1 when element e was already added to set pos
	var marks []int
	for pos, set := range sets {
		idx.IDs[pos] = set.ID
		members := make([]uint32, 0, len(set.Elements))
		for _, el := range set.Elements {
			id, ok := ids[el]
			if !ok {
				if len(ids) == math.MaxUint32 {
					return nil, errs.ErrInvalidInputShape.New("more than 2^32-1 distinct elements")
				}
				id = uint32(len(ids))
				ids[el] = id
				marks = append(marks, 0)
			}
			if marks[id] == pos+1 {
				continue
			}
			marks[id] = pos + 1
			members = append(members, id)
		}
		idx.Members[pos] = members
		idx.Memberships += len(members)
	}

	idx.Size = len(ids)
	if idx.Size == 0 {
		return nil, errs.ErrEmptyInput.New("no set has any elements")
	}
	return idx, nil
}

// Len returns the number of sets.
func (idx *Index[K]) Len() int {
	return len(idx.IDs)
}
