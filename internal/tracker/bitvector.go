package tracker

import (
	"fmt"

	"github.com/prysmaticlabs/go-bitfield"
)

// BitVector tracks remaining memberships with one fixed-width bit vector per
// surviving set. Gains are word-at-a-time population counts, which suits
// dense universes.
//
// The shared coverage vector is stored inverted (a set bit means the element
// is still uncovered), so shrinking a set after a selection is a single AND.
type BitVector struct {
	size      uint64
	uncovered *bitfield.Bitlist64
	remaining []*bitfield.Bitlist64
	gains     []int
	left      int
}

var _ Tracker = (*BitVector)(nil)

// NewBitVector builds a BitVector tracker over a universe of size elements.
// members[i] lists the deduplicated element indices of set i.
func NewBitVector(members [][]uint32, size int) *BitVector {
	n := uint64(size)
	b := &BitVector{
		size:      n,
		uncovered: bitfield.NewBitlist64(n),
		remaining: make([]*bitfield.Bitlist64, len(members)),
		gains:     make([]int, len(members)),
	}
	for i, m := range members {
		if len(m) == 0 {
			continue
		}
		bv := bitfield.NewBitlist64(n)
		for _, el := range m {
			bv.SetBitAt(uint64(el), true)
			b.uncovered.SetBitAt(uint64(el), true)
		}
		b.remaining[i] = bv
		b.gains[i] = int(bv.Count())
	}
	b.left = int(b.uncovered.Count())
	return b
}

func (b *BitVector) Len() int       { return len(b.remaining) }
func (b *BitVector) Uncovered() int { return b.left }

func (b *BitVector) IsCovered(el uint32) bool {
	return !b.uncovered.BitAt(uint64(el))
}

// Gain returns the cached population count of the set's remaining vector.
// The cache is refreshed whenever Select shrinks the vector.
func (b *BitVector) Gain(set int) int {
	return b.gains[set]
}

func (b *BitVector) Select(set int) int {
	delta := b.remaining[set]
	gain := b.gains[set]
	b.Retire(set)
	if gain == 0 {
		return 0
	}

	for _, el := range delta.BitIndices() {
		b.uncovered.SetBitAt(uint64(el), false)
	}
	b.left -= gain

	for i, rem := range b.remaining {
		if b.gains[i] == 0 {
			continue
		}
		if err := rem.NoAllocAnd(b.uncovered, rem); err != nil {
			// every vector is created with the same length
			panic(fmt.Sprintf("tracker: bit vector length mismatch: %v", err))
		}
		b.gains[i] = int(rem.Count())
		if b.gains[i] == 0 {
			b.remaining[i] = nil
		}
	}
	return gain
}

func (b *BitVector) Retire(set int) {
	b.remaining[set] = nil
	b.gains[set] = 0
}

func (b *BitVector) Footprint() Footprint {
	perVector := int((b.size + 63) / 64)
	live := 1 // the shared coverage vector
	for _, rem := range b.remaining {
		if rem != nil {
			live++
		}
	}
	words := live * perVector
	return Footprint{
		Strategy: "bit-vector",
		Words:    words,
		Bytes:    uint64(words) * 8,
	}
}
