package feed

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lottolab/powerpick/internal/lottery"
)

// drawRecord is one row of the winning-numbers dataset. The feed encodes
// everything as strings, with the five white balls and the red ball in a
// single space-separated field.
type drawRecord struct {
	DrawDate       string `json:"draw_date"`
	WinningNumbers string `json:"winning_numbers"`
	Multiplier     string `json:"multiplier"`
}

// drawDateLayouts covers the timestamp shapes the dataset has used over
// the years.
var drawDateLayouts = []string{
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	lottery.DateLayout,
}

func (r drawRecord) toDraw() (lottery.Draw, error) {
	date, err := parseDrawDate(r.DrawDate)
	if err != nil {
		return lottery.Draw{}, err
	}

	fields := strings.Fields(r.WinningNumbers)
	if len(fields) != lottery.MainCount+1 {
		return lottery.Draw{}, fmt.Errorf("expected %d numbers, got %d", lottery.MainCount+1, len(fields))
	}

	numbers := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return lottery.Draw{}, fmt.Errorf("bad number %q: %w", field, err)
		}
		numbers = append(numbers, n)
	}

	main := numbers[:lottery.MainCount]
	sort.Ints(main)

	draw := lottery.Draw{
		Date:      date,
		Main:      main,
		Powerball: numbers[lottery.MainCount],
	}

	// Multiplier is absent for draws before the add-on existed and for
	// rows the feed has not backfilled.
	if r.Multiplier != "" {
		multiplier, err := strconv.Atoi(strings.TrimSpace(r.Multiplier))
		if err != nil || multiplier < lottery.MinMultiplier || multiplier > lottery.MaxMultiplier {
			draw.Multiplier = 0
		} else {
			draw.Multiplier = multiplier
		}
	}

	if err := draw.Validate(); err != nil {
		return lottery.Draw{}, err
	}
	return draw, nil
}

func parseDrawDate(value string) (time.Time, error) {
	for _, layout := range drawDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable draw date %q", value)
}
