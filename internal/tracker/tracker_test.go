package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type constructor func(members [][]uint32, size int) Tracker

var strategies = map[string]constructor{
	"hash-set":   func(m [][]uint32, n int) Tracker { return NewHashSet(m, n) },
	"bit-vector": func(m [][]uint32, n int) Tracker { return NewBitVector(m, n) },
}

func TestTrackerContract(t *testing.T) {
	// universe 0..6; set 3 is empty
	members := [][]uint32{
		{0, 1, 2},
		{2, 3, 4},
		{4, 5, 6},
		{},
		{1, 5},
	}

	for name, newTracker := range strategies {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			tr := newTracker(members, 7)

			assert.Equal(5, tr.Len())
			assert.Equal(7, tr.Uncovered())
			assert.Equal([]int{3, 3, 3, 0, 2}, gains(tr))
			for el := uint32(0); el < 7; el++ {
				assert.False(tr.IsCovered(el))
			}

			assert.Equal(3, tr.Select(1))
			assert.Equal(4, tr.Uncovered())
			assert.True(tr.IsCovered(2))
			assert.True(tr.IsCovered(3))
			assert.True(tr.IsCovered(4))
			assert.False(tr.IsCovered(0))
			assert.Equal([]int{2, 0, 2, 0, 2}, gains(tr))

			assert.Equal(2, tr.Select(0))
			assert.Equal([]int{0, 0, 2, 0, 1}, gains(tr))

			// selecting a set with nothing left is a no-op
			assert.Equal(0, tr.Select(1))
			assert.Equal(2, tr.Uncovered())

			assert.Equal(2, tr.Select(2))
			assert.Equal(0, tr.Uncovered())
			assert.Equal([]int{0, 0, 0, 0, 0}, gains(tr))
		})
	}
}

func TestTrackerRetire(t *testing.T) {
	members := [][]uint32{{0, 1}, {1, 2}}
	for name, newTracker := range strategies {
		t.Run(name, func(t *testing.T) {
			tr := newTracker(members, 3)
			tr.Retire(1)
			assert.Equal(t, 0, tr.Gain(1))
			// retiring doesn't cover anything
			assert.Equal(t, 3, tr.Uncovered())
			assert.Equal(t, 2, tr.Select(0))
			assert.Equal(t, 1, tr.Uncovered())
		})
	}
}

func TestFootprintBounds(t *testing.T) {
	const (
		size = 1000
		sets = 50
	)
	members := make([][]uint32, sets)
	memberships := 0
	for i := range members {
		for el := i * 7; el < i*7+100 && el < size; el++ {
			members[i] = append(members[i], uint32(el))
		}
		memberships += len(members[i])
	}

	t.Run("hash-set", func(t *testing.T) {
		tr := NewHashSet(members, size)
		fp := tr.Footprint()
		assert.Equal(t, "hash-set", fp.Strategy)
		assert.LessOrEqual(t, fp.Entries, memberships+size)

		before := fp.Entries
		tr.Select(0)
		assert.Less(t, tr.Footprint().Entries, before)
	})

	t.Run("bit-vector", func(t *testing.T) {
		tr := NewBitVector(members, size)
		perVector := (size + 63) / 64
		fp := tr.Footprint()
		assert.Equal(t, "bit-vector", fp.Strategy)
		assert.LessOrEqual(t, fp.Words, perVector*(sets+2))
		assert.Equal(t, uint64(fp.Words)*8, fp.Bytes)

		tr.Select(0)
		surviving := 0
		for i := 0; i < tr.Len(); i++ {
			if tr.Gain(i) > 0 {
				surviving++
			}
		}
		assert.LessOrEqual(t, tr.Footprint().Words, perVector*(surviving+2))
	})
}

func gains(tr Tracker) []int {
	out := make([]int, tr.Len())
	for i := range out {
		out[i] = tr.Gain(i)
	}
	return out
}
