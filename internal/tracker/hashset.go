package tracker

// HashSet tracks remaining memberships with one hash set per surviving set.
// Memory is proportional to the remaining memberships, which suits sparse
// universes where bit vectors would be mostly zero.
type HashSet struct {
	remaining []map[uint32]struct{}
	uncovered map[uint32]struct{}
}

var _ Tracker = (*HashSet)(nil)

// NewHashSet builds a HashSet tracker over a universe of size elements.
// members[i] lists the deduplicated element indices of set i.
func NewHashSet(members [][]uint32, size int) *HashSet {
	h := &HashSet{
		remaining: make([]map[uint32]struct{}, len(members)),
		uncovered: make(map[uint32]struct{}, size),
	}
	for i, m := range members {
		if len(m) == 0 {
			continue
		}
		rem := make(map[uint32]struct{}, len(m))
		for _, el := range m {
			rem[el] = struct{}{}
			h.uncovered[el] = struct{}{}
		}
		h.remaining[i] = rem
	}
	return h
}

func (h *HashSet) Len() int       { return len(h.remaining) }
func (h *HashSet) Uncovered() int { return len(h.uncovered) }

func (h *HashSet) IsCovered(el uint32) bool {
	_, ok := h.uncovered[el]
	return !ok
}

func (h *HashSet) Gain(set int) int {
	return len(h.remaining[set])
}

func (h *HashSet) Select(set int) int {
	delta := h.remaining[set]
	h.remaining[set] = nil
	if len(delta) == 0 {
		return 0
	}

	for el := range delta {
		delete(h.uncovered, el)
	}

	for i, rem := range h.remaining {
		if len(rem) == 0 {
			continue
		}
		// walk whichever side is smaller
		if len(rem) <= len(delta) {
			for el := range rem {
				if _, ok := delta[el]; ok {
					delete(rem, el)
				}
			}
		} else {
			for el := range delta {
				delete(rem, el)
			}
		}
		// deleted map buckets are never returned to the runtime
		if len(rem) == 0 {
			h.remaining[i] = nil
		}
	}
	return len(delta)
}

func (h *HashSet) Retire(set int) {
	h.remaining[set] = nil
}

func (h *HashSet) Footprint() Footprint {
	entries := len(h.uncovered)
	for _, rem := range h.remaining {
		entries += len(rem)
	}
	return Footprint{
		Strategy: "hash-set",
		Entries:  entries,
		Bytes:    uint64(entries) * 4,
	}
}
