package service

import (
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

// Divergence compares the current candle to the preceding lookback window:
// a new price extreme whose velocity stays below the prior velocity peak
// means the move is running on weakening conviction. Used by the position
// monitor as an early-exit warning, never as an entry filter.
//
// Only the single most recent extreme is compared, not a full swing-point
// scan, deliberately kept as the desk originally ran it.
func (d *Detector) Divergence(snap *structsvc.Snapshot) (models.DivergenceResult, error) {
	cur := snap.Current
	lb := d.p.DivergenceLookback
	if cur-lb+1 < 0 {
		return models.DivergenceResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"divergence needs %d candles, current index %d", lb, cur)
	}

	curVel, ok := snap.Velocity.At(cur)
	if !ok {
		return models.DivergenceResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"velocity undefined at index %d", cur)
	}

	// Prior window: the lookback candles before the current one.
	first := cur - lb + 1
	priorHigh := snap.EntryCandles[first].High
	priorLow := snap.EntryCandles[first].Low
	priorVelPeak := 0.0
	for i := first; i < cur; i++ {
		c := snap.EntryCandles[i]
		if c.High > priorHigh {
			priorHigh = c.High
		}
		if c.Low < priorLow {
			priorLow = c.Low
		}
		if v, ok := snap.Velocity.At(i); ok && v > priorVelPeak {
			priorVelPeak = v
		}
	}

	res := models.DivergenceResult{Type: models.ReasonDivergenceNone, Lookback: lb}
	c := snap.EntryCandles[cur]
	switch {
	case c.High > priorHigh && curVel < priorVelPeak:
		res.Detected = true
		res.Type = models.ReasonDivergenceBullish
	case c.Low < priorLow && curVel < priorVelPeak:
		res.Detected = true
		res.Type = models.ReasonDivergenceBearish
	}
	return res, nil
}
