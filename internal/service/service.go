package service

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lottolab/powerpick/internal/lottery"
	"github.com/lottolab/powerpick/internal/metrics"
	"github.com/lottolab/powerpick/internal/picker"
	"github.com/lottolab/powerpick/internal/prize"
	"github.com/lottolab/powerpick/internal/store"
	"github.com/lottolab/powerpick/pkg/common/logger"
)

var (
	ErrInvalidPick = errors.New("invalid pick")
	ErrBadDrawDate = errors.New("bad draw date")
)

// Service ties the draw cache to the pick generator and prize evaluator.
// The generator is rebuilt whenever the cache changes; requests read the
// current snapshot under a read lock.
type Service struct {
	draws *store.DrawStore
	src   picker.Source

	mu  sync.RWMutex
	gen *picker.Generator
}

// New loads the cached history and builds the initial generator.
func New(draws *store.DrawStore, src picker.Source) (*Service, error) {
	s := &Service{draws: draws, src: src}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the frequency tables from the current cache. Called at
// startup and from the refresher's update hook.
func (s *Service) Reload() error {
	history, err := s.draws.AllDraws()
	if err != nil {
		return fmt.Errorf("failed to load draw history: %w", err)
	}

	gen := picker.NewGenerator(history, s.src)
	s.mu.Lock()
	s.gen = gen
	s.mu.Unlock()

	metrics.SetCachedDraws(len(history))
	logger.Info("Frequency tables rebuilt", "draws", len(history))
	return nil
}

// GenerateRequest is one pick generation call. Out-of-range numeric
// fields are clamped, never rejected.
type GenerateRequest struct {
	Count           int     `json:"count"`
	Randomness      float64 `json:"randomness_percent"`
	MainLocked      []int   `json:"main_locked,omitempty"`
	PowerballLocked []int   `json:"powerball_locked,omitempty"`
}

// PickBatch is a generated set of lines with its request metadata.
type PickBatch struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	Randomness float64        `json:"randomness_percent"`
	Picks      []lottery.Pick `json:"picks"`
}

// GeneratePicks produces a batch against the current frequency snapshot.
func (s *Service) GeneratePicks(req GenerateRequest) PickBatch {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	picks := gen.GeneratePicks(req.Count, req.Randomness, req.MainLocked, req.PowerballLocked)
	metrics.RecordPickBatch(len(picks))

	return PickBatch{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Randomness: picker.NormalizeRandomness(req.Randomness),
		Picks:      picks,
	}
}

// CheckRequest evaluates one pick against a draw. An empty DrawDate means
// the latest cached draw. Multiplier, when set, overrides the draw's own
// recorded multiplier.
type CheckRequest struct {
	Main       []int    `json:"main"`
	Powerball  int      `json:"powerball"`
	DrawDate   string   `json:"draw_date,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
}

type CheckResult struct {
	Pick           lottery.Pick `json:"pick"`
	DrawDate       string       `json:"draw_date"`
	WhiteMatches   int          `json:"white_matches"`
	PowerballMatch bool         `json:"powerball_match"`
	Prize          prize.Result `json:"prize"`
	Odds           string       `json:"odds,omitempty"`
}

// CheckPick scores a pick against a cached draw and computes its prize.
func (s *Service) CheckPick(req CheckRequest) (*CheckResult, error) {
	pick := lottery.Pick{Main: req.Main, Powerball: req.Powerball}
	if err := pick.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPick, err)
	}

	draw, err := s.resolveDraw(req.DrawDate)
	if err != nil {
		return nil, err
	}

	white, pbMatch := lottery.Matches(pick, *draw)

	// NaN means "no multiplier"; the prize table then reports base only.
	multiplier := math.NaN()
	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	} else if draw.Multiplier != 0 {
		multiplier = float64(draw.Multiplier)
	}
	prized := prize.ComputePrize(white, pbMatch, multiplier)

	metrics.RecordCheck(white, pbMatch)

	result := &CheckResult{
		Pick:           pick,
		DrawDate:       draw.DateKey(),
		WhiteMatches:   white,
		PowerballMatch: pbMatch,
		Prize:          prized,
	}
	if odds, ok := prize.Odds(white, pbMatch); ok {
		result.Odds = "1 in " + odds.String()
	}
	return result, nil
}

func (s *Service) resolveDraw(dateStr string) (*lottery.Draw, error) {
	if dateStr == "" {
		return s.draws.LatestDraw()
	}
	date, err := time.Parse(lottery.DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadDrawDate, dateStr)
	}
	return s.draws.GetDraw(date)
}

// History returns up to limit draws, newest first.
func (s *Service) History(limit int) ([]lottery.Draw, error) {
	return s.draws.ListDraws(limit)
}

// DrawByDate returns the draw for a YYYY-MM-DD date string.
func (s *Service) DrawByDate(dateStr string) (*lottery.Draw, error) {
	return s.resolveDraw(dateStr)
}

// Latest returns the most recent cached draw.
func (s *Service) Latest() (*lottery.Draw, error) {
	return s.draws.LatestDraw()
}

// Jackpot returns the cached jackpot estimate.
func (s *Service) Jackpot() (*lottery.Jackpot, error) {
	return s.draws.GetJackpot()
}

// Odds returns the full prize table in rank order.
func (s *Service) Odds() []prize.Tier {
	return prize.Tiers()
}

// Count reports the cached history size.
func (s *Service) Count() (int, error) {
	return s.draws.Count()
}
