package prize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAmount(t *testing.T, want string, got Amount) {
	t.Helper()
	if want == "JACKPOT" {
		require.True(t, got.IsJackpot(), "want JACKPOT, got %s", got)
		return
	}
	require.False(t, got.IsJackpot(), "want %s, got JACKPOT", want)
	require.True(t, decimal.RequireFromString(want).Equal(got.Decimal()),
		"want %s, got %s", want, got.Decimal())
}

func TestComputePrizeBaseTiers(t *testing.T) {
	tests := []struct {
		white int
		pb    bool
		want  string
	}{
		{5, true, "JACKPOT"},
		{5, false, "1000000"},
		{4, true, "50000"},
		{4, false, "100"},
		{3, true, "100"},
		{3, false, "7"},
		{2, true, "7"},
		{1, true, "4"},
		{0, true, "4"},
		{2, false, "0"},
		{1, false, "0"},
		{0, false, "0"},
	}
	for _, tt := range tests {
		res := ComputePrize(tt.white, tt.pb, 0)
		requireAmount(t, tt.want, res.Base)
		assert.Nil(t, res.WithMultiplier, "white=%d pb=%v: no multiplier given", tt.white, tt.pb)
	}
}

func TestComputePrizeJackpotNeverMultiplied(t *testing.T) {
	res := ComputePrize(5, true, 5)
	requireAmount(t, "JACKPOT", res.Base)
	require.NotNil(t, res.WithMultiplier)
	requireAmount(t, "JACKPOT", *res.WithMultiplier)
}

func TestComputePrizeMatchFiveSpecialCase(t *testing.T) {
	// the 5-white prize multiplies to exactly 2,000,000 no matter the
	// multiplier value
	for _, m := range []float64{2, 3, 5, 10} {
		res := ComputePrize(5, false, m)
		requireAmount(t, "1000000", res.Base)
		require.NotNil(t, res.WithMultiplier)
		requireAmount(t, "2000000", *res.WithMultiplier)
	}
}

func TestComputePrizeMultiplied(t *testing.T) {
	res := ComputePrize(3, false, 2)
	requireAmount(t, "7", res.Base)
	require.NotNil(t, res.WithMultiplier)
	requireAmount(t, "14", *res.WithMultiplier)

	res = ComputePrize(4, true, 10)
	requireAmount(t, "50000", res.Base)
	require.NotNil(t, res.WithMultiplier)
	requireAmount(t, "500000", *res.WithMultiplier)

	res = ComputePrize(2, true, 3)
	requireAmount(t, "7", res.Base)
	require.NotNil(t, res.WithMultiplier)
	requireAmount(t, "21", *res.WithMultiplier)
}

func TestComputePrizeZeroTierStaysZero(t *testing.T) {
	res := ComputePrize(0, false, 3)
	requireAmount(t, "0", res.Base)
	require.NotNil(t, res.WithMultiplier)
	requireAmount(t, "0", *res.WithMultiplier)
}

func TestComputePrizeNoMultiplier(t *testing.T) {
	for _, m := range []float64{0, 1, 1.99, -3, math.NaN(), math.Inf(1), math.Inf(-1)} {
		res := ComputePrize(3, false, m)
		requireAmount(t, "7", res.Base)
		assert.Nil(t, res.WithMultiplier, "multiplier %v should not apply", m)
	}
}

func TestComputePrizeUnknownCombination(t *testing.T) {
	res := ComputePrize(7, false, 2)
	requireAmount(t, "0", res.Base)
	require.NotNil(t, res.WithMultiplier)
	requireAmount(t, "0", *res.WithMultiplier)
}

func TestOdds(t *testing.T) {
	d, ok := Odds(5, true)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("292201338").Equal(d))

	d, ok = Odds(0, true)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("38.32").Equal(d))

	_, ok = Odds(2, false)
	assert.False(t, ok, "2 white without powerball is not a winning tier")
	_, ok = Odds(0, false)
	assert.False(t, ok)
}

func TestTiersOrdered(t *testing.T) {
	tiers := Tiers()
	require.Len(t, tiers, 9)
	assert.Equal(t, 5, tiers[0].WhiteMatches)
	assert.True(t, tiers[0].PowerballMatch)
	assert.True(t, tiers[0].Base.IsJackpot())
	assert.Equal(t, 0, tiers[8].WhiteMatches)
	assert.True(t, tiers[8].PowerballMatch)
}

func TestAmountJSON(t *testing.T) {
	res := ComputePrize(5, false, 3)
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"base":"1000000","with_multiplier":"2000000"}`, string(data))

	var back Result
	require.NoError(t, json.Unmarshal(data, &back))
	requireAmount(t, "1000000", back.Base)
	require.NotNil(t, back.WithMultiplier)
	requireAmount(t, "2000000", *back.WithMultiplier)

	jp, err := json.Marshal(ComputePrize(5, true, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"base":"JACKPOT"}`, string(jp))
}
