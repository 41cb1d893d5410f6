package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

type Config struct {
	BaseURL      string
	Account      string
	APIKey       string
	APISecret    string
	OrderTimeout time.Duration
	QueryTimeout time.Duration
}

// Client talks to the execution gateway. The broker behind it owns position
// state and the hard stop orders; this client only submits and reads.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.OrderTimeout <= 0 {
		cfg.OrderTimeout = 10 * time.Second
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

// SubmitOrder places a market order with attached stop and first target. TP2
// stays engine-side: the trail rule is re-evaluated per cycle, the broker only
// ever sees the resulting close.
func (c *Client) SubmitOrder(ctx context.Context, order models.SizedOrder) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.OrderTimeout)
	defer cancel()

	req := models.OrderRequest{
		Instrument: order.Instrument,
		Direction:  order.Direction,
		Volume:     order.Volume,
		StopLoss:   order.StopLoss,
		TakeProfit: order.TakeProfit1,
		Label:      order.Label,
	}
	var payload statusPayload
	if err := c.call(ctx, http.MethodPost, "/v1/orders", req, &payload); err != nil {
		return "", errors.Wrap(err, "POST /v1/orders")
	}
	if payload.Code != 0 {
		return "", errors.Errorf("gateway rejected order: code=%d msg=%s", payload.Code, payload.Msg)
	}
	return payload.OrderID, nil
}

// SubmitClose asks the broker to flatten one position at market.
func (c *Client) SubmitClose(ctx context.Context, positionID string, reason models.Reason) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.OrderTimeout)
	defer cancel()

	var payload statusPayload
	err := c.call(ctx, http.MethodPost, "/v1/positions/close", closeRequest{
		PositionID: positionID,
		Reason:     string(reason),
	}, &payload)
	if err != nil {
		return errors.Wrap(err, "POST /v1/positions/close")
	}
	if payload.Code != 0 {
		return errors.Errorf("gateway rejected close: code=%d msg=%s", payload.Code, payload.Msg)
	}
	return nil
}

func (c *Client) Positions(ctx context.Context) ([]models.Position, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	var payload positionsPayload
	if err := c.call(ctx, http.MethodGet, c.accountPath("/v1/positions"), nil, &payload); err != nil {
		return nil, errors.Wrap(err, "GET /v1/positions")
	}
	if payload.Code != 0 {
		return nil, errors.Errorf("gateway positions error: code=%d msg=%s", payload.Code, payload.Msg)
	}

	out := make([]models.Position, 0, len(payload.Positions))
	for _, row := range payload.Positions {
		out = append(out, row.toPosition())
	}
	return out, nil
}

func (c *Client) Equity(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	var payload equityPayload
	if err := c.call(ctx, http.MethodGet, c.accountPath("/v1/account/equity"), nil, &payload); err != nil {
		return 0, errors.Wrap(err, "GET /v1/account/equity")
	}
	if payload.Code != 0 {
		return 0, errors.Errorf("gateway equity error: code=%d msg=%s", payload.Code, payload.Msg)
	}
	if payload.Equity <= 0 {
		return 0, errors.Errorf("gateway reports equity %.2f", payload.Equity)
	}
	return payload.Equity, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, dst interface{}) error {
	var raw []byte
	if body != nil {
		var err error
		raw, err = sonic.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode body")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	c.sign(req, method, path, string(raw))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(models.ErrUpstreamUnavailable, "do request: %v", err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(models.ErrUpstreamUnavailable, "read body: %v", err)
	}
	if resp.StatusCode/100 != 2 {
		return errors.Wrapf(models.ErrUpstreamUnavailable, "http %d: %s", resp.StatusCode, string(rb))
	}
	if err := sonic.Unmarshal(rb, dst); err != nil {
		return errors.Wrapf(models.ErrUpstreamUnavailable, "decode: %v", err)
	}
	return nil
}

func (c *Client) accountPath(path string) string {
	if c.cfg.Account == "" {
		return path
	}
	return path + "?account=" + url.QueryEscape(c.cfg.Account)
}

func (c *Client) sign(req *http.Request, method, path, body string) {
	ts := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	msg := ts + strings.ToUpper(method) + path + body
	h := hmac.New(sha256.New, []byte(c.cfg.APISecret))
	h.Write([]byte(msg))
	req.Header.Set("X-GW-KEY", c.cfg.APIKey)
	req.Header.Set("X-GW-SIGN", base64.StdEncoding.EncodeToString(h.Sum(nil)))
	req.Header.Set("X-GW-TIMESTAMP", ts)
}
