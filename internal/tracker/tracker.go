// Package tracker records which universe elements are covered and how many
// still-uncovered elements each surviving set would add.
//
// Two strategies implement Tracker: HashSet keeps per-set hash sets of
// remaining element indices, BitVector keeps per-set bit vectors over the
// whole universe. Both are owned by a single solve call and are not safe for
// concurrent use.
package tracker

// Tracker is the coverage state the greedy selector runs against. Sets and
// elements are addressed by their dense positions from the universe index.
type Tracker interface {
	// Len returns the number of sets, selected and retired ones included.
	Len() int
	// Uncovered returns the number of elements not yet covered.
	Uncovered() int
	// IsCovered reports whether element el has been covered.
	IsCovered(el uint32) bool
	// Gain returns how many uncovered elements set would cover.
	Gain(set int) int
	// Select marks every remaining element of set as covered, shrinks the
	// other sets accordingly and returns the number of newly covered
	// elements. The set's own gain drops to zero.
	Select(set int) int
	// Retire releases the state kept for a set that will never be selected.
	Retire(set int)
	// Footprint reports the memory currently held.
	Footprint() Footprint
}

// Footprint is a tracker's memory accounting.
type Footprint struct {
	Strategy string `json:"strategy"`
	// Entries counts hash-set entries (remaining memberships plus the uncovered pool).
	Entries int `json:"entries,omitempty"`
	// Words counts 64-bit words across live bit vectors.
	Words int `json:"words,omitempty"`
	// Bytes approximates payload bytes, ignoring map and slice headers.
	Bytes uint64 `json:"bytes"`
}
