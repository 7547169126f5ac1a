package events

import (
	"fmt"

	"github.com/lottolab/powerpick/internal/lottery"
)

const (
	TypeDrawAdded      = "draw.added"
	TypeJackpotUpdated = "jackpot.updated"
	TypeRefreshError   = "refresh.error"
)

// Event is the envelope published for every notification.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Emitter publishes refresh outcomes for downstream consumers. All
// methods are fire-and-forget; a failed publish never fails a refresh.
type Emitter interface {
	EmitDraw(draw lottery.Draw) error
	EmitJackpot(jackpot lottery.Jackpot) error
	EmitError(err error) error
	Close()
}

// subjectFor builds the per-type subject, e.g. "powerpick.draw.added".
func subjectFor(prefix, eventType string) string {
	return fmt.Sprintf("%s.%s", prefix, eventType)
}
