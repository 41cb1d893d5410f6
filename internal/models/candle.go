package models

import (
	"time"

	"github.com/pkg/errors"
)

// Candle is one closed OHLCV bar. Sequences are always oldest-first.
type Candle struct {
	Ts     time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

func (c Candle) Range() float64 { return c.High - c.Low }

func (c Candle) valid() bool {
	if c.High < c.Open || c.High < c.Close || c.High < c.Low {
		return false
	}
	if c.Low > c.Open || c.Low > c.Close {
		return false
	}
	return c.Volume >= 0
}

// ValidateCandles rejects the whole batch on the first ordering or OHLC
// violation. Partial repair would poison every indicator downstream.
func ValidateCandles(cs []Candle) error {
	for i, c := range cs {
		if !c.valid() {
			return errors.Wrapf(ErrMalformedCandle, "index %d ts=%s", i, c.Ts.Format(time.RFC3339))
		}
		if i > 0 && !cs[i-1].Ts.Before(c.Ts) {
			return errors.Wrapf(ErrMalformedCandle, "out of order at index %d", i)
		}
	}
	return nil
}

// Quote is the current best bid/ask for an instrument.
type Quote struct {
	Instrument string
	Bid        float64
	Ask        float64
}
