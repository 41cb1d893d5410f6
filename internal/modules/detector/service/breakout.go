package service

import (
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

// Breakout confirms direction, and only runs once compression and velocity
// both agreed. The range is taken over the compression lookback window, the
// current candle excluded. A close beyond the range without RSI confirmation
// is "momentum not confirmed": no signal, not a weaker one.
func (d *Detector) Breakout(snap *structsvc.Snapshot, comp models.CompressionResult, vel models.VelocityResult) (models.BreakoutResult, error) {
	cur := snap.Current
	res := models.BreakoutResult{
		Signal:     models.DirectionNone,
		ClosePrice: snap.EntryCandles[cur].Close,
		Reason:     models.ReasonNotEvaluated,
	}
	if !comp.Compressed || !vel.Spike {
		return res, nil
	}

	if cur-d.p.CompressionLookback < 0 {
		return models.BreakoutResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"breakout range needs %d candles before index %d", d.p.CompressionLookback, cur)
	}
	rsi, ok := snap.RSI14.At(cur)
	if !ok {
		return models.BreakoutResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"RSI undefined at index %d", cur)
	}
	res.RSI = rsi

	hi := snap.EntryCandles[cur-d.p.CompressionLookback].High
	lo := snap.EntryCandles[cur-d.p.CompressionLookback].Low
	for i := cur - d.p.CompressionLookback + 1; i < cur; i++ {
		c := snap.EntryCandles[i]
		if c.High > hi {
			hi = c.High
		}
		if c.Low < lo {
			lo = c.Low
		}
	}
	res.RangeHigh, res.RangeLow = hi, lo

	longOK := res.ClosePrice > hi && rsi > d.p.RSILongMin
	shortOK := res.ClosePrice < lo && rsi < d.p.RSIShortMax

	switch {
	case longOK && shortOK:
		// Impossible under the formulas above, but never pick a side on
		// contradictory input.
		res.Reason = models.ReasonAmbiguousBreakout
	case longOK:
		res.Signal = models.DirectionLong
		res.Reason = models.ReasonBreakoutLong
	case shortOK:
		res.Signal = models.DirectionShort
		res.Reason = models.ReasonBreakoutShort
	case res.ClosePrice > hi || res.ClosePrice < lo:
		res.Reason = models.ReasonMomentumNotConfirmed
	default:
		res.Reason = models.ReasonInsideRange
	}
	return res, nil
}
