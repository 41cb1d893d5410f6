package models

import "github.com/pkg/errors"

// Cycle-level error taxonomy. Callers are expected to branch with errors.Is.
var (
	// ErrInsufficientHistory: not enough warmed-up bars for the requested
	// evaluation. Not a bug: wait for more candles and retry the cycle.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrInvalidStop: stop-loss equals entry, sizing would divide by zero.
	// The signal is rejected, nothing is submitted.
	ErrInvalidStop = errors.New("invalid stop: zero distance to entry")

	// ErrUpstreamUnavailable: market data / gateway call failed or timed out.
	// Always wrapped with the originating call name.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedCandle: ordering or OHLC invariant violated in a supplied
	// batch. The whole batch is rejected, never partially repaired.
	ErrMalformedCandle = errors.New("malformed candle")
)
