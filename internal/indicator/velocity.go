package indicator

import "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"

// VelocityAvgPeriod is the rolling window for the average-velocity baseline.
const VelocityAvgPeriod = 20

// CandleVelocity is |close-open| / (high-low) per candle: the fraction of the
// bar's range taken by its body, a proxy for directional conviction. Zero for
// a degenerate bar where high == low. Defined from index 0, there is no
// warmup for the raw measure.
func CandleVelocity(candles []models.Candle) Series {
	s := newSeries(len(candles), 0)
	for i, c := range candles {
		r := c.High - c.Low
		if r == 0 {
			continue
		}
		body := c.Close - c.Open
		if body < 0 {
			body = -body
		}
		s.set(i, body/r)
	}
	return s
}

// VelocityAverage is the 20-period rolling mean of the velocity series.
func VelocityAverage(vel Series) Series {
	return SMA(vel.vals, VelocityAvgPeriod)
}
