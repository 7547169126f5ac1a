package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lottolab/powerpick/internal/lottery"
)

const (
	drawKeyPrefix = "draw"
	drawIndexKey  = "draw_dates"
	latestDateKey = "latest_draw_date"
	jackpotKey    = "jackpot:current"
)

var (
	ErrNoDraws      = errors.New("no draws cached")
	ErrDrawNotFound = errors.New("draw not found")
	ErrNoJackpot    = errors.New("no jackpot cached")
)

// DrawStore manages the draw history cache on top of a KVStore. Each draw
// lives under its own key and a sorted date index keeps the history
// enumerable without backend-specific scans.
type DrawStore struct {
	kv KVStore
}

// NewDrawStore creates a new DrawStore
func NewDrawStore(kv KVStore) *DrawStore {
	return &DrawStore{kv: kv}
}

// SaveDraws upserts a batch of draws and returns the ones not previously
// cached, in the order they arrived. Draws already in the index are
// overwritten in place so feed corrections land, but they are not
// reported as new.
func (ds *DrawStore) SaveDraws(draws []lottery.Draw) ([]lottery.Draw, error) {
	index, err := ds.readIndex()
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(index))
	for _, dateKey := range index {
		known[dateKey] = true
	}

	var added []lottery.Draw
	for _, draw := range draws {
		dateKey := draw.DateKey()

		data, err := json.Marshal(draw)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal draw %s: %w", dateKey, err)
		}
		if err := ds.kv.Set(ds.getDrawKey(dateKey), data); err != nil {
			return nil, fmt.Errorf("failed to store draw %s: %w", dateKey, err)
		}

		if !known[dateKey] {
			known[dateKey] = true
			index = append(index, dateKey)
			added = append(added, draw)
		}
	}

	if len(added) == 0 {
		return nil, nil
	}

	// Date keys are YYYY-MM-DD, so lexicographic order is chronological.
	sort.Strings(index)

	data, err := json.Marshal(index)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draw index: %w", err)
	}
	if err := ds.kv.Set(drawIndexKey, data); err != nil {
		return nil, fmt.Errorf("failed to store draw index: %w", err)
	}
	if err := ds.kv.Set(latestDateKey, []byte(index[len(index)-1])); err != nil {
		return nil, fmt.Errorf("failed to store latest draw date: %w", err)
	}

	return added, nil
}

// GetDraw retrieves the draw for a specific date.
func (ds *DrawStore) GetDraw(date time.Time) (*lottery.Draw, error) {
	return ds.getDrawByDateKey(date.Format(lottery.DateLayout))
}

// LatestDraw retrieves the most recent cached draw.
func (ds *DrawStore) LatestDraw() (*lottery.Draw, error) {
	data, err := ds.kv.Get(latestDateKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrNoDraws
		}
		return nil, fmt.Errorf("failed to get latest draw date: %w", err)
	}
	return ds.getDrawByDateKey(string(data))
}

// ListDraws retrieves up to limit draws, newest first. A limit of zero or
// below returns the full history.
func (ds *DrawStore) ListDraws(limit int) ([]lottery.Draw, error) {
	index, err := ds.readIndex()
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > len(index) {
		limit = len(index)
	}

	draws := make([]lottery.Draw, 0, limit)
	for i := len(index) - 1; i >= 0 && len(draws) < limit; i-- {
		draw, err := ds.getDrawByDateKey(index[i])
		if err != nil {
			return nil, err
		}
		draws = append(draws, *draw)
	}
	return draws, nil
}

// AllDraws retrieves the full history in chronological order. This is the
// input for frequency table rebuilds.
func (ds *DrawStore) AllDraws() ([]lottery.Draw, error) {
	index, err := ds.readIndex()
	if err != nil {
		return nil, err
	}

	draws := make([]lottery.Draw, 0, len(index))
	for _, dateKey := range index {
		draw, err := ds.getDrawByDateKey(dateKey)
		if err != nil {
			return nil, err
		}
		draws = append(draws, *draw)
	}
	return draws, nil
}

// Count reports how many draws are cached.
func (ds *DrawStore) Count() (int, error) {
	index, err := ds.readIndex()
	if err != nil {
		return 0, err
	}
	return len(index), nil
}

// SaveJackpot replaces the cached jackpot snapshot.
func (ds *DrawStore) SaveJackpot(jackpot lottery.Jackpot) error {
	data, err := json.Marshal(jackpot)
	if err != nil {
		return fmt.Errorf("failed to marshal jackpot: %w", err)
	}
	if err := ds.kv.Set(jackpotKey, data); err != nil {
		return fmt.Errorf("failed to store jackpot: %w", err)
	}
	return nil
}

// GetJackpot retrieves the cached jackpot snapshot.
func (ds *DrawStore) GetJackpot() (*lottery.Jackpot, error) {
	data, err := ds.kv.Get(jackpotKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrNoJackpot
		}
		return nil, fmt.Errorf("failed to get jackpot: %w", err)
	}

	var jackpot lottery.Jackpot
	if err := json.Unmarshal(data, &jackpot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal jackpot: %w", err)
	}
	return &jackpot, nil
}

// Close releases the underlying backend.
func (ds *DrawStore) Close() error {
	return ds.kv.Close()
}

func (ds *DrawStore) getDrawByDateKey(dateKey string) (*lottery.Draw, error) {
	data, err := ds.kv.Get(ds.getDrawKey(dateKey))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDrawNotFound, dateKey)
		}
		return nil, fmt.Errorf("failed to get draw %s: %w", dateKey, err)
	}

	var draw lottery.Draw
	if err := json.Unmarshal(data, &draw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draw %s: %w", dateKey, err)
	}
	return &draw, nil
}

// readIndex loads the sorted date index, treating a missing index as an
// empty history.
func (ds *DrawStore) readIndex() ([]string, error) {
	data, err := ds.kv.Get(drawIndexKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draw index: %w", err)
	}

	var index []string
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draw index: %w", err)
	}
	return index, nil
}

// getDrawKey generates the storage key for a single draw.
func (ds *DrawStore) getDrawKey(dateKey string) string {
	return fmt.Sprintf("%s:%s", drawKeyPrefix, dateKey)
}
