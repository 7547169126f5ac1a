package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/lottolab/powerpick/internal/config"
	"github.com/lottolab/powerpick/internal/lottery"
	"github.com/lottolab/powerpick/internal/pool"
	"github.com/lottolab/powerpick/internal/ratelimiter"
	"github.com/lottolab/powerpick/pkg/common/logger"
	"github.com/lottolab/powerpick/pkg/retry"
)

// Client pulls draw results from the open-data winning-numbers dataset
// and jackpot estimates from the lottery site. Mirrors rotate through a
// failover pool and every host gets its own rate limit bucket.
type Client struct {
	pool     *pool.Pool
	limiter  *ratelimiter.PooledRateLimiter
	http     *http.Client
	cfg      config.FeedConfig
	appToken string
}

func NewClient(cfg config.FeedConfig) *Client {
	var appToken string
	if cfg.AppTokenEnv != "" {
		appToken = os.Getenv(cfg.AppTokenEnv)
	}

	rps := cfg.RateLimit.RequestsPerSecond
	if rps < 1 {
		rps = 1
	}

	return &Client{
		pool:    pool.New(cfg.Sources),
		limiter: ratelimiter.NewPooled(time.Second/time.Duration(rps), cfg.RateLimit.BurstSize),
		http: &http.Client{
			Timeout: cfg.Client.RequestTimeout,
		},
		cfg:      cfg,
		appToken: appToken,
	}
}

// FetchDraws retrieves draws on or after since, oldest first. A zero
// since fetches the full history. Rows that do not parse as a valid draw
// are logged and skipped rather than failing the batch.
func (c *Client) FetchDraws(ctx context.Context, since time.Time) ([]lottery.Draw, error) {
	var records []drawRecord

	attempt := func() error {
		endpoint := c.pool.Next()
		if endpoint == "" {
			return fmt.Errorf("no feed sources configured")
		}

		reqURL, err := buildDrawsURL(endpoint, since, c.cfg.PageLimit)
		if err != nil {
			return fmt.Errorf("failed to build feed url: %w", err)
		}

		body, err := c.get(ctx, reqURL)
		if err != nil {
			c.pool.MarkFailed(endpoint)
			return err
		}
		c.pool.MarkHealthy(endpoint)

		records = records[:0]
		if err := json.Unmarshal(body, &records); err != nil {
			return fmt.Errorf("failed to decode feed response: %w", err)
		}
		return nil
	}

	err := retry.Constant(ctx, attempt, c.cfg.Client.RetryDelay, c.cfg.Client.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch draws: %w", err)
	}

	draws := make([]lottery.Draw, 0, len(records))
	for _, record := range records {
		draw, err := record.toDraw()
		if err != nil {
			logger.Warn("Skipping malformed feed row",
				"draw_date", record.DrawDate,
				"winning_numbers", record.WinningNumbers,
				"error", err)
			continue
		}
		draws = append(draws, draw)
	}
	return draws, nil
}

// get performs one rate-limited request and returns the response body.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	parsed, err := url.Parse(reqURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %s: %w", reqURL, err)
	}
	if err := c.limiter.Wait(ctx, parsed.Host); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for error context.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, parsed.Host, snippet)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// buildDrawsURL appends Socrata query parameters to a dataset endpoint.
func buildDrawsURL(endpoint string, since time.Time, pageLimit int) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set("$order", "draw_date ASC")
	if pageLimit > 0 {
		query.Set("$limit", fmt.Sprintf("%d", pageLimit))
	}
	if !since.IsZero() {
		query.Set("$where", fmt.Sprintf("draw_date >= '%s'", since.Format("2006-01-02T15:04:05.000")))
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// Close releases the per-host rate limit buckets.
func (c *Client) Close() {
	c.limiter.Close()
}

// Stats reports pool and limiter state for the health endpoint.
func (c *Client) Stats() (poolTotal, poolHealthy int, limiters map[string]map[string]any) {
	total, healthy, _ := c.pool.Stats()
	return total, healthy, c.limiter.Stats()
}
