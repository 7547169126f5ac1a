package picker

import (
	"math"
	"sort"

	"github.com/lottolab/powerpick/internal/lottery"
)

const (
	// MaxPicksPerBatch caps a single generation request.
	MaxPicksPerBatch = 50
)

// PickOneWeighted selects one candidate. Each candidate's probability is a
// blend of its frequency weight and the uniform distribution:
//
//	p(c) = (1-alpha) * weight(c)/sum(weights) + alpha * 1/len(candidates)
//
// alpha is clamped to [0, 1]; 0 is pure frequency-weighted, 1 pure uniform.
// One uniform draw r in [0, 1) is consumed from src and the candidates are
// walked in order, accumulating p(c), returning the first candidate whose
// running sum reaches r. If rounding leaves the final sum just under r the
// last candidate is returned; that is the defined edge policy, not an
// error. candidates must be non-empty; an empty slice is a caller bug and
// panics.
func PickOneWeighted(src Source, candidates []int, weights FrequencyTable, alpha float64) int {
	if len(candidates) == 0 {
		panic("picker: PickOneWeighted called with empty candidate pool")
	}
	alpha = clampFloat(alpha, 0, 1)

	total := 0
	for _, c := range candidates {
		total += weights.Weight(c)
	}
	uniformP := 1 / float64(len(candidates))

	r := src.Float64()
	cumulative := 0.0
	for _, c := range candidates {
		weightedP := float64(weights.Weight(c)) / float64(total)
		cumulative += (1-alpha)*weightedP + alpha*uniformP
		if cumulative >= r {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// Generator produces picks against one frozen pair of frequency tables.
type Generator struct {
	main      FrequencyTable
	powerball FrequencyTable
	src       Source
}

// NewGenerator builds both frequency tables from the draw history once. An
// empty history yields tables where every domain value has weight exactly 1.
func NewGenerator(draws []lottery.Draw, src Source) *Generator {
	return &Generator{
		main:      BuildFrequencyTable(MainValues(draws), lottery.MainMax),
		powerball: BuildFrequencyTable(PowerballValues(draws), lottery.PowerballMax),
		src:       src,
	}
}

// NewGeneratorWithTables wires pre-built tables, for callers that cache
// snapshots themselves.
func NewGeneratorWithTables(main, powerball FrequencyTable, src Source) *Generator {
	return &Generator{main: main, powerball: powerball, src: src}
}

// GeneratePicks produces count picks. count is clamped to
// [1, MaxPicksPerBatch] and randomnessPercent to [0, 100] (alpha =
// randomnessPercent/100). mainLocked is truncated to its first
// lottery.MainCount entries; duplicate or out-of-domain locked values are
// dropped while seeding. A non-empty powerballLocked (after dropping
// invalid values) restricts the powerball to that subset. Picks are
// independent: the same line can appear more than once in a batch,
// increasingly so as alpha approaches 1. No errors are raised; malformed
// numeric inputs are clamped, not rejected.
func (g *Generator) GeneratePicks(count int, randomnessPercent float64, mainLocked, powerballLocked []int) []lottery.Pick {
	count = clampInt(count, 1, MaxPicksPerBatch)
	alpha := clampFloat(randomnessPercent, 0, 100) / 100

	if len(mainLocked) > lottery.MainCount {
		mainLocked = mainLocked[:lottery.MainCount]
	}
	pbCandidates := distinctInDomain(powerballLocked, lottery.PowerballMax)

	picks := make([]lottery.Pick, 0, count)
	for i := 0; i < count; i++ {
		var pb int
		pbChosen := false
		if len(pbCandidates) > 0 {
			pb = PickOneWeighted(g.src, pbCandidates, g.powerball, alpha)
			pbChosen = true
		}

		pool := fullDomain(lottery.MainMax)
		main := make([]int, 0, lottery.MainCount)
		for _, v := range mainLocked {
			if v < 1 || v > lottery.MainMax || containsInt(main, v) {
				continue
			}
			main = append(main, v)
			pool = removeValue(pool, v)
		}
		for len(main) < lottery.MainCount {
			v := PickOneWeighted(g.src, pool, g.main, alpha)
			main = append(main, v)
			pool = removeValue(pool, v)
		}

		if !pbChosen {
			pb = PickOneWeighted(g.src, fullDomain(lottery.PowerballMax), g.powerball, alpha)
		}

		sort.Ints(main)
		picks = append(picks, lottery.Pick{Main: main, Powerball: pb})
	}
	return picks
}

// NormalizeRandomness reports the effective randomness percent after
// clamping, the same normalization GeneratePicks applies.
func NormalizeRandomness(p float64) float64 {
	return clampFloat(p, 0, 100)
}

func fullDomain(max int) []int {
	domain := make([]int, max)
	for i := range domain {
		domain[i] = i + 1
	}
	return domain
}

// removeValue splices v out of pool in place, preserving order.
func removeValue(pool []int, v int) []int {
	for i, p := range pool {
		if p == v {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}

// distinctInDomain keeps the first occurrence of each in-domain value,
// preserving input order. An all-invalid input degrades to nil, which
// callers treat as "no restriction".
func distinctInDomain(values []int, max int) []int {
	var out []int
	for _, v := range values {
		if v < 1 || v > max || containsInt(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampFloat clamps v to [min, max]; NaN clamps to min.
func clampFloat(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
