package indicator

import (
	"math"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

// ATR is Wilder's average true range: the first value at index `period` is
// the simple average of the first `period` true ranges (TR needs a previous
// close, so TR itself starts at index 1), smoothed afterwards as
// atr[i] = (atr[i-1]*(period-1) + tr[i]) / period.
func ATR(candles []models.Candle, period int) Series {
	if period <= 0 {
		period = 14
	}
	n := len(candles)
	s := newSeries(n, period)
	if n < period+1 {
		return Series{vals: make([]float64, n), first: n}
	}

	tr := func(i int) float64 {
		c := candles[i]
		prevClose := candles[i-1].Close
		r := c.High - c.Low
		r = math.Max(r, math.Abs(c.High-prevClose))
		return math.Max(r, math.Abs(c.Low-prevClose))
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += tr(i)
	}
	s.set(period, sum/float64(period))

	for i := period + 1; i < n; i++ {
		prev, _ := s.At(i - 1)
		s.set(i, (prev*float64(period-1)+tr(i))/float64(period))
	}
	return s
}
