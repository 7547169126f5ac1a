package picker

import "github.com/lottolab/powerpick/internal/lottery"

// FrequencyTable maps a domain value to its smoothed occurrence weight.
// Built once per history snapshot; read-only afterward, safe to share
// across concurrent generation calls.
type FrequencyTable map[int]int

// BuildFrequencyTable counts how often each value of [1, domainMax] occurs
// in values, then applies Laplace smoothing (+1). Every domain value is
// present in the result with a strictly positive weight, so no number is
// ever unpickable. Values outside the domain are ignored.
func BuildFrequencyTable(values []int, domainMax int) FrequencyTable {
	table := make(FrequencyTable, domainMax)
	for v := 1; v <= domainMax; v++ {
		table[v] = 0
	}
	for _, v := range values {
		if v >= 1 && v <= domainMax {
			table[v]++
		}
	}
	for v := 1; v <= domainMax; v++ {
		table[v]++
	}
	return table
}

// Weight returns the table weight for v, defaulting to 1 for values absent
// from the table so a caller-supplied candidate can never have zero
// probability.
func (t FrequencyTable) Weight(v int) int {
	if w, ok := t[v]; ok && w > 0 {
		return w
	}
	return 1
}

// MainValues pools every main number of every draw (all five slots).
func MainValues(draws []lottery.Draw) []int {
	values := make([]int, 0, len(draws)*lottery.MainCount)
	for _, d := range draws {
		values = append(values, d.Main...)
	}
	return values
}

// PowerballValues collects the powerball of every draw.
func PowerballValues(draws []lottery.Draw) []int {
	values := make([]int, 0, len(draws))
	for _, d := range draws {
		values = append(values, d.Powerball)
	}
	return values
}
