package refresher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lottolab/powerpick/internal/config"
	"github.com/lottolab/powerpick/internal/events"
	"github.com/lottolab/powerpick/internal/feed"
	"github.com/lottolab/powerpick/internal/lottery"
	"github.com/lottolab/powerpick/internal/metrics"
	"github.com/lottolab/powerpick/internal/store"
	"github.com/lottolab/powerpick/pkg/common/logger"
)

// DrawFetcher is the slice of the feed client the refresher needs.
type DrawFetcher interface {
	FetchDraws(ctx context.Context, since time.Time) ([]lottery.Draw, error)
	FetchJackpot(ctx context.Context) (*lottery.Jackpot, error)
}

// Result summarizes one refresh cycle.
type Result struct {
	Fetched        int
	Added          []lottery.Draw
	JackpotUpdated bool
}

// Refresher keeps the draw cache in sync with the feed, either on a
// fixed poll interval or a cron schedule.
type Refresher struct {
	fetcher  DrawFetcher
	draws    *store.DrawStore
	emitter  events.Emitter
	cfg      config.RefreshConfig
	onUpdate func(Result)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	cron   *cron.Cron
}

func New(fetcher DrawFetcher, draws *store.DrawStore, emitter events.Emitter, cfg config.RefreshConfig) *Refresher {
	if emitter == nil {
		emitter = events.NewNoop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		fetcher: fetcher,
		draws:   draws,
		emitter: emitter,
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// OnUpdate registers a hook invoked after a cycle that changed the cache.
// The hook runs on the refresher goroutine.
func (r *Refresher) OnUpdate(fn func(Result)) {
	r.onUpdate = fn
}

// RefreshOnce runs a single fetch-and-store cycle. The fetch window
// starts Overlap before the cached latest draw so late feed corrections
// are picked up; a cold cache fetches the full history.
func (r *Refresher) RefreshOnce(ctx context.Context) (Result, error) {
	start := time.Now()
	result, err := r.refreshOnce(ctx)
	metrics.RecordRefresh(time.Since(start), len(result.Added), err)
	return result, err
}

func (r *Refresher) refreshOnce(ctx context.Context) (Result, error) {
	var result Result

	var since time.Time
	latest, err := r.draws.LatestDraw()
	switch {
	case err == nil:
		since = latest.Date.Add(-r.cfg.Overlap)
	case errors.Is(err, store.ErrNoDraws):
		// Cold start, pull everything.
	default:
		return result, fmt.Errorf("failed to read latest draw: %w", err)
	}

	draws, err := r.fetcher.FetchDraws(ctx, since)
	if err != nil {
		return result, err
	}
	result.Fetched = len(draws)

	added, err := r.draws.SaveDraws(draws)
	if err != nil {
		return result, fmt.Errorf("failed to save draws: %w", err)
	}
	result.Added = added

	for _, draw := range added {
		if err := r.emitter.EmitDraw(draw); err != nil {
			logger.Warn("Failed to emit draw event", "date", draw.DateKey(), "error", err)
		}
	}

	r.refreshJackpot(ctx, &result)

	if len(added) > 0 {
		logger.Info("Draw cache refreshed", "fetched", result.Fetched, "added", len(added))
	}
	if r.onUpdate != nil && (len(added) > 0 || result.JackpotUpdated) {
		r.onUpdate(result)
	}
	return result, nil
}

// refreshJackpot is best effort: jackpot failures never fail the cycle.
func (r *Refresher) refreshJackpot(ctx context.Context, result *Result) {
	jackpot, err := r.fetcher.FetchJackpot(ctx)
	if err != nil {
		if !errors.Is(err, feed.ErrNoJackpotSource) {
			logger.Warn("Failed to fetch jackpot", "error", err)
		}
		return
	}

	current, err := r.draws.GetJackpot()
	if err == nil && current.Annuity.Equal(jackpot.Annuity) && current.Cash.Equal(jackpot.Cash) {
		return
	}

	if err := r.draws.SaveJackpot(*jackpot); err != nil {
		logger.Error("Failed to save jackpot", "error", err)
		return
	}
	if err := r.emitter.EmitJackpot(*jackpot); err != nil {
		logger.Warn("Failed to emit jackpot event", "error", err)
	}
	result.JackpotUpdated = true
	logger.Info("Jackpot updated", "annuity", jackpot.Annuity.String())
}

// Start launches the background loop. With a Schedule configured the
// refresher runs on cron, otherwise it polls on PollInterval.
func (r *Refresher) Start() error {
	if r.cfg.Schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(r.cfg.Schedule, r.runScheduled); err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", r.cfg.Schedule, err)
		}
		r.cron = c
		c.Start()
		logger.Info("Refresher started", "schedule", r.cfg.Schedule)
		return nil
	}

	r.wg.Add(1)
	go r.run()
	logger.Info("Refresher started", "poll_interval", r.cfg.PollInterval)
	return nil
}

func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	errorCount := 0
	const maxConsecutiveErrors = 5

	for {
		select {
		case <-r.ctx.Done():
			logger.Info("Refresher stopped")
			return
		case <-ticker.C:
			if _, err := r.RefreshOnce(r.ctx); err != nil {
				errorCount++
				logger.Error("Error refreshing draw cache", "error", err, "consecutive_errors", errorCount)
				_ = r.emitter.EmitError(err)
				if errorCount >= maxConsecutiveErrors {
					logger.Warn("Too many consecutive errors, slowing down")
					time.Sleep(r.cfg.PollInterval)
					errorCount = 0
				}
			} else {
				errorCount = 0
			}
		}
	}
}

func (r *Refresher) runScheduled() {
	if _, err := r.RefreshOnce(r.ctx); err != nil {
		logger.Error("Error refreshing draw cache", "error", err)
		_ = r.emitter.EmitError(err)
	}
}

// Stop halts the loop and waits for an in-flight cycle to finish.
func (r *Refresher) Stop() {
	r.cancel()
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
	r.wg.Wait()
}
