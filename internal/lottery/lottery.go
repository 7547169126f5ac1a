package lottery

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MainCount is the number of main (white-ball) numbers per line.
	MainCount = 5
	// MainMax is the upper bound of the main-number domain [1, MainMax].
	MainMax = 69
	// PowerballMax is the upper bound of the powerball domain [1, PowerballMax].
	PowerballMax = 26

	// MinMultiplier and MaxMultiplier bound the per-draw prize multiplier.
	MinMultiplier = 2
	MaxMultiplier = 10
)

// DateLayout is the canonical date rendering for draws (draws are daily,
// time-of-day is not significant).
const DateLayout = "2006-01-02"

// Draw is one historical drawing as supplied by the results feed.
// Immutable once loaded; the core never constructs draws itself.
type Draw struct {
	Date       time.Time `json:"date"`
	Main       []int     `json:"main"`
	Powerball  int       `json:"powerball"`
	Multiplier int       `json:"multiplier,omitempty"` // 0 = not recorded
}

// Pick is one generated line: five distinct main numbers sorted ascending
// plus a powerball.
type Pick struct {
	Main      []int `json:"main"`
	Powerball int   `json:"powerball"`
}

// Jackpot is the advertised jackpot estimate for the next drawing.
type Jackpot struct {
	Annuity      decimal.Decimal `json:"annuity"`
	Cash         decimal.Decimal `json:"cash"`
	NextDrawDate time.Time       `json:"next_draw_date,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ValidateMain checks a main-number line: exactly MainCount values, each in
// [1, MainMax], all distinct.
func ValidateMain(nums []int) error {
	if len(nums) != MainCount {
		return fmt.Errorf("expected %d main numbers, got %d", MainCount, len(nums))
	}
	seen := make(map[int]bool, MainCount)
	for _, n := range nums {
		if n < 1 || n > MainMax {
			return fmt.Errorf("main number %d out of range [1, %d]", n, MainMax)
		}
		if seen[n] {
			return fmt.Errorf("duplicate main number %d", n)
		}
		seen[n] = true
	}
	return nil
}

// ValidatePowerball checks a powerball value against its domain.
func ValidatePowerball(n int) error {
	if n < 1 || n > PowerballMax {
		return fmt.Errorf("powerball %d out of range [1, %d]", n, PowerballMax)
	}
	return nil
}

// Validate checks a pick's structural invariants.
func (p Pick) Validate() error {
	if err := ValidateMain(p.Main); err != nil {
		return err
	}
	return ValidatePowerball(p.Powerball)
}

// Validate checks a draw as it comes off the feed.
func (d Draw) Validate() error {
	if d.Date.IsZero() {
		return fmt.Errorf("draw has no date")
	}
	if err := ValidateMain(d.Main); err != nil {
		return err
	}
	if err := ValidatePowerball(d.Powerball); err != nil {
		return err
	}
	if d.Multiplier != 0 && (d.Multiplier < MinMultiplier || d.Multiplier > MaxMultiplier) {
		return fmt.Errorf("multiplier %d out of range [%d, %d]", d.Multiplier, MinMultiplier, MaxMultiplier)
	}
	return nil
}

// DateKey renders the draw date in DateLayout form, the shape used for
// store keys and API parameters.
func (d Draw) DateKey() string {
	return d.Date.Format(DateLayout)
}

// Matches counts how many of the pick's main numbers appear in the draw and
// whether the powerball matches. Order-insensitive.
func Matches(p Pick, d Draw) (whiteMatches int, powerballMatch bool) {
	winning := make(map[int]bool, len(d.Main))
	for _, n := range d.Main {
		winning[n] = true
	}
	for _, n := range p.Main {
		if winning[n] {
			whiteMatches++
		}
	}
	return whiteMatches, p.Powerball == d.Powerball
}

func (p Pick) String() string {
	var b strings.Builder
	for i, n := range p.Main {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02d", n)
	}
	fmt.Fprintf(&b, " PB %02d", p.Powerball)
	return b.String()
}
