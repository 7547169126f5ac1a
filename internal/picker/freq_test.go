package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottolab/powerpick/internal/lottery"
)

func sampleDraws() []lottery.Draw {
	date := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	return []lottery.Draw{
		{Date: date, Main: []int{1, 2, 3, 4, 5}, Powerball: 1, Multiplier: 2},
		{Date: date.AddDate(0, 0, 3), Main: []int{1, 2, 10, 20, 30}, Powerball: 1},
		{Date: date.AddDate(0, 0, 7), Main: []int{1, 40, 50, 60, 69}, Powerball: 26},
	}
}

func TestBuildFrequencyTableEmptyHistory(t *testing.T) {
	for _, max := range []int{lottery.MainMax, lottery.PowerballMax} {
		table := BuildFrequencyTable(nil, max)
		require.Len(t, table, max)
		for v := 1; v <= max; v++ {
			assert.Equal(t, 1, table[v], "value %d", v)
		}
	}
}

func TestBuildFrequencyTableCounts(t *testing.T) {
	draws := sampleDraws()

	main := BuildFrequencyTable(MainValues(draws), lottery.MainMax)
	require.Len(t, main, lottery.MainMax)
	assert.Equal(t, 4, main[1], "1 appears in all three draws plus smoothing")
	assert.Equal(t, 3, main[2])
	assert.Equal(t, 2, main[3])
	assert.Equal(t, 1, main[68], "unseen value keeps the smoothing weight")
	assert.Equal(t, 2, main[69])

	pb := BuildFrequencyTable(PowerballValues(draws), lottery.PowerballMax)
	require.Len(t, pb, lottery.PowerballMax)
	assert.Equal(t, 3, pb[1])
	assert.Equal(t, 2, pb[26])
	assert.Equal(t, 1, pb[13])
}

func TestBuildFrequencyTableIgnoresOutOfDomain(t *testing.T) {
	table := BuildFrequencyTable([]int{0, -3, 70, 5}, lottery.MainMax)
	require.Len(t, table, lottery.MainMax)
	assert.Equal(t, 2, table[5])
	for v := 1; v <= lottery.MainMax; v++ {
		assert.GreaterOrEqual(t, table[v], 1)
	}
}

func TestWeightDefaultsToOne(t *testing.T) {
	table := FrequencyTable{3: 7}
	assert.Equal(t, 7, table.Weight(3))
	assert.Equal(t, 1, table.Weight(99), "missing key defaults to 1")
	assert.Equal(t, 1, FrequencyTable{}.Weight(1))
}

func TestMainValuesPoolsAllSlots(t *testing.T) {
	draws := sampleDraws()
	values := MainValues(draws)
	require.Len(t, values, len(draws)*lottery.MainCount)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, values[:5])
}

func TestPowerballValues(t *testing.T) {
	values := PowerballValues(sampleDraws())
	assert.Equal(t, []int{1, 1, 26}, values)
}
