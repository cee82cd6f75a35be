package setcover

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStrategies = []Strategy{HashSet, BitVector}

func TestSolveBoundaries(t *testing.T) {
	t.Run("single dominating set", func(t *testing.T) {
		sets := []Set[string, int64]{
			{ID: "A", Elements: []int64{1, 2, 3, 4, 5}},
			{ID: "B", Elements: []int64{1, 2}},
			{ID: "C", Elements: []int64{3, 4}},
		}
		for _, s := range allStrategies {
			cover, err := Solve(sets, s)
			require.NoError(t, err)
			assert.Equal(t, []string{"A"}, cover, s.String())
		}
	})

	t.Run("disjoint ends all required", func(t *testing.T) {
		sets := []Set[string, int64]{
			{ID: "S1", Elements: []int64{1, 2, 3}},
			{ID: "S2", Elements: []int64{3, 4, 5}},
			{ID: "S3", Elements: []int64{5, 6, 7}},
		}
		for _, s := range allStrategies {
			cover, err := Solve(sets, s)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"S1", "S2", "S3"}, cover, s.String())
			assert.NoError(t, Verify(sets, cover))
		}
	})

	t.Run("two equal overlapping sets", func(t *testing.T) {
		sets := map[string][]int64{"A": {1, 2}, "B": {2, 3}}
		for _, s := range allStrategies {
			cover, err := SolveMap(sets, s)
			require.NoError(t, err)
			assert.Len(t, cover, 2)
			assert.ElementsMatch(t, []string{"A", "B"}, cover)
		}
	})

	t.Run("greedy path", func(t *testing.T) {
		sets := map[int64][]int64{
			1: {1, 2, 3, 4, 5, 6},
			2: {1, 2, 7},
			3: {3, 4, 8},
			4: {5, 6, 9},
			5: {7, 8, 9, 10},
		}
		for _, s := range allStrategies {
			cover, err := SolveMap(sets, s)
			require.NoError(t, err)
			assert.Equal(t, []int64{1, 5}, cover)
		}
	})

	t.Run("empty set alongside others", func(t *testing.T) {
		sets := []Set[int64, int64]{
			{ID: 1, Elements: []int64{1, 2, 3}},
			{ID: 2, Elements: nil},
			{ID: 3, Elements: []int64{3, 4, 5}},
		}
		for _, s := range allStrategies {
			cover, err := Solve(sets, s)
			require.NoError(t, err)
			assert.Equal(t, []int64{1, 3}, cover)
		}
	})

	t.Run("string elements", func(t *testing.T) {
		sets := []Set[int64, string]{
			{ID: 1, Elements: []string{"a", "b"}},
			{ID: 2, Elements: []string{"b", "c", "d"}},
			{ID: 3, Elements: []string{"d", "e"}},
		}
		for _, s := range allStrategies {
			cover, err := Solve(sets, s)
			require.NoError(t, err)
			assert.NoError(t, Verify(sets, cover))
		}
	})
}

func TestSolveInvalidInput(t *testing.T) {
	for _, s := range allStrategies {
		_, err := Solve[string, int64](nil, s)
		assert.True(t, ErrEmptyInput.Is(err))

		_, err = SolveMap(map[string][]int64{"A": {}, "B": nil}, s)
		assert.True(t, ErrEmptyInput.Is(err))
		assert.True(t, IsInputError(err))

		_, err = Solve([]Set[string, int64]{
			{ID: "A", Elements: []int64{1}},
			{ID: "A", Elements: []int64{2}},
		}, s)
		assert.True(t, ErrInvalidInputShape.Is(err))
	}

	_, err := Solve([]Set[string, int64]{{ID: "A", Elements: []int64{1}}}, Strategy(7))
	assert.True(t, ErrUnknownStrategy.Is(err))
}

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		name     string
		expected Strategy
	}{
		{"greedy-0", HashSet},
		{"0", HashSet},
		{"greedy-1", BitVector},
		{"1", BitVector},
	}
	for _, tc := range cases {
		s, err := ParseStrategy(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, s)
	}

	_, err := ParseStrategy("invalid-algorithm-name")
	require.Error(t, err)
	assert.True(t, ErrUnknownStrategy.Is(err))
	assert.True(t, IsInputError(err))
	assert.Contains(t, err.Error(), `must be in ("greedy-0", "greedy-1")`)

	var s Strategy
	require.NoError(t, s.UnmarshalText([]byte("greedy-0")))
	assert.Equal(t, HashSet, s)
	text, err := BitVector.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "greedy-1", string(text))
	assert.Equal(t, BitVector, DefaultStrategy)
}

// randomSets draws n sets of up to maxSize elements from [0, universe).
func randomSets(seed uint64, n, universe, maxSize int) []Set[int64, int64] {
	rng := rand.New(rand.NewPCG(seed, seed))
	sets := make([]Set[int64, int64], n)
	for i := range sets {
		size := 1 + rng.IntN(maxSize)
		elements := make([]int64, size)
		for j := range elements {
			elements[j] = rng.Int64N(int64(universe))
		}
		sets[i] = Set[int64, int64]{ID: int64(i), Elements: elements}
	}
	return sets
}

func TestSolveProperties(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		sets := randomSets(seed, 40, 200, 30)
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			var covers [][]int64
			for _, s := range allStrategies {
				res, err := SolveDetailed(sets, s)
				require.NoError(t, err)
				require.NoError(t, Verify(sets, res.Cover))

				again, err := Solve(sets, s)
				require.NoError(t, err)
				assert.Equal(t, res.Cover, again, "deterministic")

				assertGreedySteps(t, sets, res)
				covers = append(covers, res.Cover)
			}
			// both strategies share the tie-break rule
			assert.Equal(t, covers[0], covers[1])
		})
	}
}

// assertGreedySteps replays the selection and checks each step took a set
// with maximal uncovered count.
func assertGreedySteps(t *testing.T, sets []Set[int64, int64], res *Result[int64]) {
	t.Helper()
	covered := map[int64]bool{}
	gain := func(set Set[int64, int64]) int {
		seen := map[int64]bool{}
		for _, el := range set.Elements {
			if !covered[el] {
				seen[el] = true
			}
		}
		return len(seen)
	}
	byID := map[int64]Set[int64, int64]{}
	for _, set := range sets {
		byID[set.ID] = set
	}

	total := 0
	for _, step := range res.Steps {
		chosen := byID[step.ID]
		require.Equal(t, gain(chosen), step.Gain)
		for _, set := range sets {
			assert.GreaterOrEqual(t, step.Gain, gain(set))
		}
		for _, el := range chosen.Elements {
			covered[el] = true
		}
		total += step.Gain
	}
	assert.Equal(t, res.Universe, total)
}

func TestSolveScale(t *testing.T) {
	if testing.Short() {
		t.Skip("large input")
	}
	const (
		nSets    = 1000
		universe = 200_000
		maxSize  = 2000
	)
	sets := randomSets(42, nSets, universe, maxSize)
	memberships := 0
	for _, set := range sets {
		memberships += len(set.Elements)
	}

	for _, s := range allStrategies {
		t.Run(s.String(), func(t *testing.T) {
			res, err := SolveDetailed(sets, s)
			require.NoError(t, err)
			require.NoError(t, Verify(sets, res.Cover))

			switch s {
			case HashSet:
				assert.LessOrEqual(t, res.Footprint.Entries, memberships+res.Universe)
			case BitVector:
				perVector := (res.Universe + 63) / 64
				assert.LessOrEqual(t, res.Footprint.Words, perVector*(res.Sets+2))
			}
		})
	}
}

func TestSolveContext(t *testing.T) {
	sets := []Set[string, string]{{ID: "A", Elements: []string{"x"}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SolveContext(ctx, sets, DefaultStrategy)
	assert.ErrorIs(t, err, context.Canceled)

	res, err := SolveContext(context.Background(), sets, DefaultStrategy)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, res.Cover)
	assert.Equal(t, []Step[string]{{ID: "A", Gain: 1}}, res.Steps)
}

func TestSolveConcurrent(t *testing.T) {
	sets := randomSets(7, 100, 500, 40)
	expected, err := Solve(sets, BitVector)
	require.NoError(t, err)

	results := make(chan []int64, 8)
	for i := 0; i < 8; i++ {
		s := allStrategies[i%2]
		go func() {
			cover, err := Solve(sets, s)
			if err != nil {
				results <- nil
				return
			}
			results <- cover
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, expected, <-results)
	}
}

func TestVerify(t *testing.T) {
	sets := []Set[string, int64]{
		{ID: "A", Elements: []int64{1, 2}},
		{ID: "B", Elements: []int64{2, 3}},
	}
	assert.NoError(t, Verify(sets, []string{"A", "B"}))
	assert.True(t, ErrInvalidCover.Is(Verify(sets, []string{"A"})))
	assert.True(t, ErrInvalidCover.Is(Verify(sets, []string{"A", "A", "B"})))
	assert.True(t, ErrInvalidCover.Is(Verify(sets, []string{"A", "C"})))
}
