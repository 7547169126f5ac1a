package prize

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/lottolab/powerpick/internal/lottery"
)

// Amount is a prize amount: either a fixed dollar value or the jackpot
// sentinel, which has no fixed numeric value. The zero Amount is $0.
type Amount struct {
	jackpot bool
	value   decimal.Decimal
}

// Jackpot is the top-tier sentinel. It marshals to the JSON string
// "JACKPOT" and is never multiplied.
var Jackpot = Amount{jackpot: true}

// NewAmount wraps a fixed dollar value.
func NewAmount(v decimal.Decimal) Amount {
	return Amount{value: v}
}

func dollars(n int64) Amount {
	return Amount{value: decimal.NewFromInt(n)}
}

func (a Amount) IsJackpot() bool { return a.jackpot }

func (a Amount) IsZero() bool { return !a.jackpot && a.value.IsZero() }

// Decimal returns the dollar value; zero for the jackpot sentinel.
func (a Amount) Decimal() decimal.Decimal {
	if a.jackpot {
		return decimal.Zero
	}
	return a.value
}

func (a Amount) Equal(b Amount) bool {
	if a.jackpot || b.jackpot {
		return a.jackpot == b.jackpot
	}
	return a.value.Equal(b.value)
}

func (a Amount) String() string {
	if a.jackpot {
		return "JACKPOT"
	}
	return "$" + a.value.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.jackpot {
		return []byte(`"JACKPOT"`), nil
	}
	return a.value.MarshalJSON()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == `"JACKPOT"` {
		*a = Jackpot
		return nil
	}
	var v decimal.Decimal
	if err := v.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("prize amount: %w", err)
	}
	*a = Amount{value: v}
	return nil
}

// Result pairs the base prize with the multiplied prize. WithMultiplier is
// nil when no valid multiplier applies.
type Result struct {
	Base           Amount  `json:"base"`
	WithMultiplier *Amount `json:"with_multiplier,omitempty"`
}

type tierKey struct {
	white int
	pb    bool
}

// Fixed tier table keyed by (white matches, powerball match). Combinations
// not listed pay nothing.
var baseTiers = map[tierKey]Amount{
	{5, true}:  Jackpot,
	{5, false}: dollars(1_000_000),
	{4, true}:  dollars(50_000),
	{4, false}: dollars(100),
	{3, true}:  dollars(100),
	{3, false}: dollars(7),
	{2, true}:  dollars(7),
	{1, true}:  dollars(4),
	{0, true}:  dollars(4),
}

// Official per-tier odds denominators ("1 in N").
var oddsTable = map[tierKey]decimal.Decimal{
	{5, true}:  decimal.RequireFromString("292201338"),
	{5, false}: decimal.RequireFromString("11688053.52"),
	{4, true}:  decimal.RequireFromString("913129.18"),
	{4, false}: decimal.RequireFromString("36525.17"),
	{3, true}:  decimal.RequireFromString("14494.11"),
	{3, false}: decimal.RequireFromString("579.76"),
	{2, true}:  decimal.RequireFromString("701.33"),
	{1, true}:  decimal.RequireFromString("91.98"),
	{0, true}:  decimal.RequireFromString("38.32"),
}

// Winning tiers in rank order, for the odds table endpoint and CLI.
var tierOrder = []tierKey{
	{5, true},
	{5, false},
	{4, true},
	{4, false},
	{3, true},
	{3, false},
	{2, true},
	{1, true},
	{0, true},
}

// ComputePrize maps a match result to its prize. multiplier is the
// per-draw Power Play value; any value that is not a finite number >= 2
// means "no multiplier" and leaves WithMultiplier unset. With a valid
// multiplier: the jackpot is never multiplied, the zero tier stays zero,
// and the 5-white tier is fixed at exactly 2,000,000 regardless of the
// multiplier's value (official rule, not base*multiplier). Every other
// winning tier multiplies its base. Unknown (white, pb) combinations fall
// through to the zero tier rather than erroring.
func ComputePrize(whiteMatches int, powerballMatch bool, multiplier float64) Result {
	base, ok := baseTiers[tierKey{whiteMatches, powerballMatch}]
	if !ok {
		base = Amount{}
	}

	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier < lottery.MinMultiplier {
		return Result{Base: base}
	}

	var with Amount
	switch {
	case base.IsJackpot():
		with = Jackpot
	case base.IsZero():
		with = Amount{}
	case whiteMatches == lottery.MainCount && !powerballMatch:
		with = dollars(2_000_000)
	default:
		with = Amount{value: base.value.Mul(decimal.NewFromFloat(multiplier))}
	}
	return Result{Base: base, WithMultiplier: &with}
}

// Odds returns the odds denominator for a tier ("1 in N") and whether the
// combination is a winning tier at all.
func Odds(whiteMatches int, powerballMatch bool) (decimal.Decimal, bool) {
	d, ok := oddsTable[tierKey{whiteMatches, powerballMatch}]
	return d, ok
}

var overallOdds = decimal.RequireFromString("24.87")

// OverallOdds is the published denominator for winning any prize at all.
func OverallOdds() decimal.Decimal {
	return overallOdds
}

// Tier describes one winning combination for display.
type Tier struct {
	WhiteMatches    int             `json:"white_matches"`
	PowerballMatch  bool            `json:"powerball_match"`
	Base            Amount          `json:"base"`
	OddsDenominator decimal.Decimal `json:"odds_denominator"`
}

// Tiers returns the nine winning tiers in rank order.
func Tiers() []Tier {
	tiers := make([]Tier, 0, len(tierOrder))
	for _, k := range tierOrder {
		tiers = append(tiers, Tier{
			WhiteMatches:    k.white,
			PowerballMatch:  k.pb,
			Base:            baseTiers[k],
			OddsDenominator: oddsTable[k],
		})
	}
	return tiers
}
