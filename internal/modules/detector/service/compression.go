package service

import (
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

// Compression counts how many of the candles immediately preceding the
// current index have a range below CompressionATRFrac of the current ATR.
// A coiled market is the precondition for a breakout meaning anything.
func (d *Detector) Compression(snap *structsvc.Snapshot) (models.CompressionResult, error) {
	cur := snap.Current
	if cur-d.p.CompressionLookback < 0 {
		return models.CompressionResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"compression needs %d candles before index %d", d.p.CompressionLookback, cur)
	}

	atr, ok := snap.ATR14.At(cur)
	if !ok {
		return models.CompressionResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"ATR undefined at index %d", cur)
	}

	threshold := d.p.CompressionATRFrac * atr
	count := 0
	for i := cur - d.p.CompressionLookback; i < cur; i++ {
		if snap.EntryCandles[i].Range() < threshold {
			count++
		}
	}

	res := models.CompressionResult{
		CompressionCount: count,
		Lookback:         d.p.CompressionLookback,
		ATRAtEvaluation:  atr,
		Reason:           models.ReasonCompressionAbsent,
	}
	if count >= d.p.CompressionMinCount {
		res.Compressed = true
		res.Reason = models.ReasonCompressionFound
	}
	return res, nil
}
