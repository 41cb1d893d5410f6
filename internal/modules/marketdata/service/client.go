package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/helper"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

type Config struct {
	BaseURL        string
	WSURL          string
	APIKey         string
	QuoteTimeout   time.Duration
	CandlesTimeout time.Duration
}

// Client is the REST side of the market-data feed. Every call carries its own
// deadline; the feed being down surfaces as ErrUpstreamUnavailable so the
// caller can skip the cycle instead of acting on stale data.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.QuoteTimeout <= 0 {
		cfg.QuoteTimeout = 5 * time.Second
	}
	if cfg.CandlesTimeout <= 0 {
		cfg.CandlesTimeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

// Candles fetches the last `count` closed candles, oldest first. A batch
// shorter than requested is ErrInsufficientHistory: the instrument is too
// young or the feed is backfilling, either way there is nothing to analyze.
func (c *Client) Candles(ctx context.Context, instrument, timeframe string, count int) ([]models.Candle, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CandlesTimeout)
	defer cancel()

	timeframe = helper.NormTimeframe(timeframe)

	q := url.Values{}
	q.Set("instrument", instrument)
	q.Set("timeframe", timeframe)
	q.Set("count", fmt.Sprintf("%d", count))

	var payload candlesPayload
	if err := c.getJSON(ctx, "/v1/candles?"+q.Encode(), &payload); err != nil {
		return nil, errors.Wrap(err, "GET /v1/candles")
	}
	if payload.Code != 0 {
		return nil, errors.Wrapf(models.ErrUpstreamUnavailable, "feed error %d: %s", payload.Code, payload.Msg)
	}
	if len(payload.Candles) < count {
		return nil, errors.Wrapf(models.ErrInsufficientHistory,
			"%s %s: got %d candles, want %d", instrument, timeframe, len(payload.Candles), count)
	}

	out := make([]models.Candle, 0, len(payload.Candles))
	for _, row := range payload.Candles {
		out = append(out, row.toCandle())
	}
	bar := helper.TimeframeDuration(timeframe)
	for i := 1; i < len(out); i++ {
		if !out[i].Ts.After(out[i-1].Ts) {
			return nil, errors.Wrapf(models.ErrMalformedCandle,
				"%s %s: candles out of order at index %d", instrument, timeframe, i)
		}
		// A skipped bar must surface, never flow into the indicators as if
		// the series were contiguous.
		if bar > 0 && out[i].Ts.Sub(out[i-1].Ts) > bar {
			return nil, errors.Wrapf(models.ErrInsufficientHistory,
				"%s %s: gap before index %d (%s missing)", instrument, timeframe,
				i, out[i].Ts.Sub(out[i-1].Ts)-bar)
		}
	}
	return out, nil
}

func (c *Client) Quote(ctx context.Context, instrument string) (models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.QuoteTimeout)
	defer cancel()

	var payload quotePayload
	if err := c.getJSON(ctx, "/v1/quote?instrument="+url.QueryEscape(instrument), &payload); err != nil {
		return models.Quote{}, errors.Wrap(err, "GET /v1/quote")
	}
	if payload.Code != 0 {
		return models.Quote{}, errors.Wrapf(models.ErrUpstreamUnavailable, "feed error %d: %s", payload.Code, payload.Msg)
	}
	if payload.Bid <= 0 || payload.Ask <= 0 || payload.Ask < payload.Bid {
		return models.Quote{}, errors.Wrapf(models.ErrUpstreamUnavailable,
			"bad quote for %s: bid %.5f ask %.5f", instrument, payload.Bid, payload.Ask)
	}
	return models.Quote{Instrument: payload.Instrument, Bid: payload.Bid, Ask: payload.Ask}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-KEY", c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(models.ErrUpstreamUnavailable, "do request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(models.ErrUpstreamUnavailable, "read body: %v", err)
	}
	if resp.StatusCode/100 != 2 {
		return errors.Wrapf(models.ErrUpstreamUnavailable, "http %d: %s", resp.StatusCode, string(body))
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return errors.Wrapf(models.ErrUpstreamUnavailable, "decode: %v", err)
	}
	return nil
}
