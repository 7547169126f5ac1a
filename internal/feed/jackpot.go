package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/lottolab/powerpick/internal/lottery"
)

// ErrNoJackpotSource means jackpot polling is not configured. Callers
// treat it as "feature off", not a failure.
var ErrNoJackpotSource = errors.New("no jackpot url configured")

// Paths tried in order, to cope with the estimates API returning either
// a single-element array or a bare object.
var (
	annuityPaths  = []string{"0.field_prize_amount", "field_prize_amount"}
	cashPaths     = []string{"0.field_cash_value", "field_cash_value"}
	nextDrawPaths = []string{"0.field_next_draw_date", "field_next_draw_date"}
)

// FetchJackpot retrieves the advertised jackpot estimate.
func (c *Client) FetchJackpot(ctx context.Context) (*lottery.Jackpot, error) {
	if c.cfg.JackpotURL == "" {
		return nil, ErrNoJackpotSource
	}

	body, err := c.get(ctx, c.cfg.JackpotURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jackpot: %w", err)
	}

	annuityRaw := firstResult(body, annuityPaths)
	if annuityRaw == "" {
		return nil, fmt.Errorf("no jackpot amount in response")
	}
	annuity, err := parseMoney(annuityRaw)
	if err != nil {
		return nil, fmt.Errorf("bad jackpot amount %q: %w", annuityRaw, err)
	}

	jackpot := &lottery.Jackpot{
		Annuity:   annuity,
		UpdatedAt: time.Now().UTC(),
	}

	// Cash value and next draw date are best effort.
	if cashRaw := firstResult(body, cashPaths); cashRaw != "" {
		if cash, err := parseMoney(cashRaw); err == nil {
			jackpot.Cash = cash
		}
	}
	if dateRaw := firstResult(body, nextDrawPaths); dateRaw != "" {
		if date, err := parseJackpotDate(dateRaw); err == nil {
			jackpot.NextDrawDate = date
		}
	}

	return jackpot, nil
}

func firstResult(body []byte, paths []string) string {
	for _, path := range paths {
		if result := gjson.GetBytes(body, path); result.Exists() {
			return result.String()
		}
	}
	return ""
}

// parseMoney converts display amounts like "$150 Million", "$1.04 Billion"
// or "$20,000,000" to an exact decimal dollar figure.
func parseMoney(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	fields := strings.Fields(cleaned)
	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return decimal.Decimal{}, err
	}

	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "thousand":
			amount = amount.Mul(decimal.New(1, 3))
		case "million":
			amount = amount.Mul(decimal.New(1, 6))
		case "billion":
			amount = amount.Mul(decimal.New(1, 9))
		default:
			return decimal.Decimal{}, fmt.Errorf("unknown unit %q", fields[1])
		}
	}
	return amount, nil
}

func parseJackpotDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, lottery.DateLayout} {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable draw date %q", value)
}
