package greedy

import (
	"testing"

	"github.com/hayeah/setcover/internal/errs"
	"github.com/hayeah/setcover/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackers(members [][]uint32, size int) map[string]tracker.Tracker {
	return map[string]tracker.Tracker{
		"hash-set":   tracker.NewHashSet(members, size),
		"bit-vector": tracker.NewBitVector(members, size),
	}
}

func TestSelect(t *testing.T) {
	cases := []struct {
		name     string
		members  [][]uint32
		size     int
		expected []Step
	}{
		{
			name:     "single dominating set",
			members:  [][]uint32{{0, 1, 2, 3, 4}, {0, 1}, {2, 3}},
			size:     5,
			expected: []Step{{Set: 0, Gain: 5}},
		},
		{
			name:    "chain needs every set",
			members: [][]uint32{{0, 1, 2}, {2, 3, 4}, {4, 5, 6}},
			size:    7,
			// all tie at 3; position 0 wins, then 2 (gain 3) beats 1 (gain 2)
			expected: []Step{{Set: 0, Gain: 3}, {Set: 2, Gain: 3}, {Set: 1, Gain: 1}},
		},
		{
			name:     "tie goes to first position",
			members:  [][]uint32{{0, 1}, {1, 2}},
			size:     3,
			expected: []Step{{Set: 0, Gain: 2}, {Set: 1, Gain: 1}},
		},
		{
			name:     "empty and duplicate sets",
			members:  [][]uint32{{}, {0, 1, 2}, {0, 1, 2}, {3, 4, 5}},
			size:     6,
			expected: []Step{{Set: 1, Gain: 3}, {Set: 3, Gain: 3}},
		},
		{
			name: "greedy path",
			members: [][]uint32{
				{0, 1, 2, 3, 4, 5},
				{0, 1, 6},
				{2, 3, 7},
				{4, 5, 8},
				{6, 7, 8, 9},
			},
			size:     10,
			expected: []Step{{Set: 0, Gain: 6}, {Set: 4, Gain: 4}},
		},
	}

	for _, tc := range cases {
		for name, tr := range trackers(tc.members, tc.size) {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				steps, err := (&Selector{}).Select(tr)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, steps)
				assert.Equal(t, 0, tr.Uncovered())
			})
		}
	}
}

func TestSelectGreedyChoicePerStep(t *testing.T) {
	var members [][]uint32
	for i := 0; i < 60; i++ {
		var m []uint32
		for el := i; el < i+1+i%7; el++ {
			m = append(m, uint32(el%64))
		}
		members = append(members, m)
	}

	for name, tr := range trackers(members, 64) {
		t.Run(name, func(t *testing.T) {
			shadow := tracker.NewHashSet(members, 64)
			steps, err := (&Selector{}).Select(tr)
			require.NoError(t, err)

			chosen := map[int]bool{}
			for _, step := range steps {
				assert.False(t, chosen[step.Set], "set %d selected twice", step.Set)
				chosen[step.Set] = true
				for i := 0; i < shadow.Len(); i++ {
					assert.GreaterOrEqual(t, step.Gain, shadow.Gain(i))
				}
				assert.Equal(t, step.Gain, shadow.Select(step.Set))
			}
			assert.Equal(t, 0, shadow.Uncovered())
		})
	}
}

// stalled claims uncovered elements but offers no set to cover them.
type stalled struct{ tracker.Tracker }

func (stalled) Len() int { return 1 }
func (stalled) Uncovered() int { return 1 }
func (stalled) Gain(int) int { return 0 }
func (stalled) Retire(int) {}
func (stalled) IsCovered(uint32) bool { return false }

func TestSelectStalled(t *testing.T) {
	_, err := (&Selector{}).Select(stalled{})
	require.Error(t, err)
	assert.True(t, errs.ErrInternalConsistency.Is(err))
	assert.False(t, errs.IsInputError(err))
}
