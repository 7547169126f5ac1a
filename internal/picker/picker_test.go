package picker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottolab/powerpick/internal/lottery"
)

// fixedSource always returns the same float, for exercising the cumulative
// walk's boundary behavior.
type fixedSource struct{ r float64 }

func (f fixedSource) Float64() float64 { return f.r }

func requireValidPick(t *testing.T, p lottery.Pick) {
	t.Helper()
	require.NoError(t, p.Validate())
	for i := 1; i < len(p.Main); i++ {
		require.Greater(t, p.Main[i], p.Main[i-1], "main numbers must be sorted ascending")
	}
}

func TestGeneratePicksStructure(t *testing.T) {
	g := NewGenerator(sampleDraws(), NewCryptoSource())
	picks := g.GeneratePicks(50, 50, nil, nil)
	require.Len(t, picks, 50)
	for _, p := range picks {
		requireValidPick(t, p)
	}
}

func TestGeneratePicksEmptyHistory(t *testing.T) {
	g := NewGenerator(nil, NewSeededSource(1))
	picks := g.GeneratePicks(10, 0, nil, nil)
	require.Len(t, picks, 10)
	for _, p := range picks {
		requireValidPick(t, p)
	}
}

func TestGeneratePicksCountClamped(t *testing.T) {
	g := NewGenerator(nil, NewSeededSource(1))
	assert.Len(t, g.GeneratePicks(0, 50, nil, nil), 1)
	assert.Len(t, g.GeneratePicks(-5, 50, nil, nil), 1)
	assert.Len(t, g.GeneratePicks(999, 50, nil, nil), MaxPicksPerBatch)
}

func TestGeneratePicksRandomnessClamped(t *testing.T) {
	g := NewGenerator(sampleDraws(), NewSeededSource(1))
	for _, pct := range []float64{-50, 150, math.NaN(), math.Inf(1), math.Inf(-1)} {
		picks := g.GeneratePicks(3, pct, nil, nil)
		require.Len(t, picks, 3)
		for _, p := range picks {
			requireValidPick(t, p)
		}
	}
}

func TestGeneratePicksHonorsMainLocked(t *testing.T) {
	g := NewGenerator(sampleDraws(), NewCryptoSource())
	locked := []int{7, 21}
	for _, p := range g.GeneratePicks(20, 30, locked, nil) {
		requireValidPick(t, p)
		for _, v := range locked {
			assert.Contains(t, p.Main, v)
		}
	}
}

func TestGeneratePicksTruncatesMainLocked(t *testing.T) {
	g := NewGenerator(nil, NewCryptoSource())
	locked := []int{1, 2, 3, 4, 5, 6}
	for _, p := range g.GeneratePicks(5, 0, locked, nil) {
		requireValidPick(t, p)
		// only the first five are honored, which fills the line entirely
		assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Main)
	}
}

func TestGeneratePicksSkipsInvalidLockedValues(t *testing.T) {
	g := NewGenerator(nil, NewCryptoSource())
	for _, p := range g.GeneratePicks(10, 50, []int{70, 7, 7, 0}, nil) {
		requireValidPick(t, p)
		assert.Contains(t, p.Main, 7)
	}
}

func TestGeneratePicksHonorsPowerballLocked(t *testing.T) {
	g := NewGenerator(sampleDraws(), NewCryptoSource())
	for _, p := range g.GeneratePicks(20, 50, nil, []int{5, 17}) {
		requireValidPick(t, p)
		assert.Contains(t, []int{5, 17}, p.Powerball)
	}
}

func TestGeneratePicksInvalidPowerballLockIgnored(t *testing.T) {
	g := NewGenerator(nil, NewCryptoSource())
	for _, p := range g.GeneratePicks(10, 50, nil, []int{0, 27}) {
		requireValidPick(t, p)
	}
}

func TestGeneratePicksDeterministicWithSeed(t *testing.T) {
	draws := sampleDraws()
	a := NewGenerator(draws, NewSeededSource(99))
	b := NewGenerator(draws, NewSeededSource(99))
	assert.Equal(t,
		a.GeneratePicks(10, 40, []int{11}, []int{3, 9}),
		b.GeneratePicks(10, 40, []int{11}, []int{3, 9}),
	)
}

func TestPickOneWeightedPanicsOnEmptyPool(t *testing.T) {
	require.Panics(t, func() {
		PickOneWeighted(NewSeededSource(1), nil, FrequencyTable{}, 0.5)
	})
}

func TestPickOneWeightedBoundaries(t *testing.T) {
	candidates := []int{10, 20, 30, 40, 50, 60, 70}
	weights := BuildFrequencyTable(nil, 70)

	// r = 0 lands on the first candidate: every p(c) is positive.
	got := PickOneWeighted(fixedSource{r: 0}, candidates, weights, 0)
	assert.Equal(t, 10, got)

	// r just below 1: with equal probabilities the walk either reaches the
	// last candidate or falls short by rounding; both paths return it.
	got = PickOneWeighted(fixedSource{r: 0.9999999999999999}, candidates, weights, 0)
	assert.Equal(t, 70, got)
}

func TestPickOneWeightedMissingWeightsDefaultToOne(t *testing.T) {
	got := PickOneWeighted(fixedSource{r: 0}, []int{4, 5, 6}, FrequencyTable{}, 0)
	assert.Equal(t, 4, got)
}

func TestPickOneWeightedUniformWhenAlphaOne(t *testing.T) {
	candidates := []int{1, 2, 3, 4, 5}
	weights := FrequencyTable{1: 1000, 2: 1, 3: 1, 4: 1, 5: 1}
	src := NewSeededSource(7)

	const trials = 20000
	counts := make(map[int]int, len(candidates))
	for i := 0; i < trials; i++ {
		counts[PickOneWeighted(src, candidates, weights, 1)]++
	}

	expected := trials / len(candidates)
	for _, c := range candidates {
		assert.InDelta(t, expected, counts[c], float64(expected)*0.15,
			"candidate %d should be ~uniform despite skewed weights", c)
	}
}

func TestPickOneWeightedProportionalWhenAlphaZero(t *testing.T) {
	candidates := []int{1, 2}
	weights := FrequencyTable{1: 30, 2: 10}
	src := NewSeededSource(11)

	const trials = 20000
	ones := 0
	for i := 0; i < trials; i++ {
		if PickOneWeighted(src, candidates, weights, 0) == 1 {
			ones++
		}
	}

	// weight(1)/sum = 30/40 = 0.75
	assert.InDelta(t, float64(trials)*0.75, float64(ones), float64(trials)*0.05)
}

func TestRemoveValue(t *testing.T) {
	pool := []int{1, 2, 3, 4}
	pool = removeValue(pool, 3)
	assert.Equal(t, []int{1, 2, 4}, pool)
	pool = removeValue(pool, 99)
	assert.Equal(t, []int{1, 2, 4}, pool)
}

func TestDistinctInDomain(t *testing.T) {
	assert.Equal(t, []int{5, 17}, distinctInDomain([]int{5, 17, 5, 0, 27}, 26))
	assert.Nil(t, distinctInDomain([]int{0, 27}, 26))
	assert.Nil(t, distinctInDomain(nil, 26))
}
