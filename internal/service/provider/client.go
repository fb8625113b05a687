package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"StockVault/internal/domain/models"
	"StockVault/internal/service/ratelimit"
	xhttp "StockVault/pkg/http"
	"StockVault/pkg/logger"
)

const limiterKey = "eod"

// Config holds EOD provider settings.
type Config struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	RequestsPerS float64
	Burst        float64
	SourceName   string
}

// Client fetches end-of-day bars from the REST provider, rate limited with a
// token bucket so bulk operations stay inside the vendor quota.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	log     *logger.Logger
}

func NewClient(cfg Config, limiter *ratelimit.Limiter, log *logger.Logger) *Client {
	return &Client{
		cfg:     cfg,
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		limiter: limiter,
		log:     log,
	}
}

// rawBar mirrors the provider's JSON wire format.
type rawBar struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adjusted_close"`
	Volume   int64   `json:"volume"`
}

// FetchDaily pulls daily bars for [start, end] inclusive. Malformed rows are
// dropped with a warning; prices round to display precision at this boundary
// so stored data matches what the vendor publishes.
func (c *Client) FetchDaily(ctx context.Context, symbol string, start, end models.Date) ([]models.DailyBar, error) {
	if err := c.limiter.Wait(ctx, limiterKey, c.cfg.Burst, c.cfg.RequestsPerS); err != nil {
		return nil, fmt.Errorf("provider: rate limit wait: %w", err)
	}

	var raw []rawBar
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/eod/%s", c.cfg.BaseURL, symbol),
		QueryParams: map[string][]string{
			"from":      {start.String()},
			"to":        {end.String()},
			"api_token": {c.cfg.APIKey},
			"fmt":       {"json"},
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("provider: fetch %s: %w", symbol, err)
	}

	bars := make([]models.DailyBar, 0, len(raw))
	for _, r := range raw {
		bar, err := c.convert(r)
		if err != nil {
			c.log.Warn("dropping malformed provider row",
				logger.String("symbol", symbol),
				logger.Error(err))
			continue
		}
		bars = append(bars, bar)
	}

	c.log.Debug("provider fetch complete",
		logger.String("symbol", symbol),
		logger.String("from", start.String()),
		logger.String("to", end.String()),
		logger.Int("bars", len(bars)))
	return bars, nil
}

func (c *Client) convert(r rawBar) (models.DailyBar, error) {
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.DailyBar{}, err
	}
	adj := r.AdjClose
	if adj == 0 {
		adj = r.Close
	}
	bar := models.DailyBar{
		Date:     date,
		Open:     round2(r.Open),
		High:     round2(r.High),
		Low:      round2(r.Low),
		Close:    round2(r.Close),
		AdjClose: round2(adj),
		Volume:   r.Volume,
	}
	if err := bar.Validate(); err != nil {
		return models.DailyBar{}, err
	}
	return bar, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
