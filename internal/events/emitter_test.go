package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSubjectFor(t *testing.T) {
	cases := map[string]string{
		TypeDrawAdded:      "powerpick.draw.added",
		TypeJackpotUpdated: "powerpick.jackpot.updated",
		TypeRefreshError:   "powerpick.refresh.error",
	}
	for eventType, want := range cases {
		if got := subjectFor("powerpick", eventType); got != want {
			t.Errorf("subjectFor(%s): expected %s, got %s", eventType, want, got)
		}
	}
}

func TestEventEnvelope(t *testing.T) {
	event := Event{
		Type:      TypeDrawAdded,
		Data:      map[string]int{"powerball": 7},
		Timestamp: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC).Unix(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Failed to marshal event: %v", err)
	}

	var decoded struct {
		Type      string         `json:"type"`
		Data      map[string]int `json:"data"`
		Timestamp int64          `json:"timestamp"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if decoded.Type != TypeDrawAdded {
		t.Errorf("Expected type %s, got %s", TypeDrawAdded, decoded.Type)
	}
	if decoded.Data["powerball"] != 7 {
		t.Errorf("Expected payload to round-trip, got %v", decoded.Data)
	}
	if decoded.Timestamp != event.Timestamp {
		t.Errorf("Expected timestamp %d, got %d", event.Timestamp, decoded.Timestamp)
	}
}

func TestNoopEmitter(t *testing.T) {
	emitter := NewNoop()
	if err := emitter.EmitError(nil); err != nil {
		t.Errorf("Noop emitter must never fail, got %v", err)
	}
	emitter.Close()
}
