package service

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

// Sizer converts a signal plus live quote and equity into a concrete order
// under a fixed-fractional risk rule. It never submits anything.
type Sizer struct {
	params models.RiskParameters
}

func NewSizer(params models.RiskParameters) *Sizer {
	if params.LotStep <= 0 {
		params.LotStep = 0.01
	}
	if params.PointValue <= 0 {
		params.PointValue = 1
	}
	return &Sizer{params: params}
}

// Size builds the order for a signal. Entry is taken from the direction-
// appropriate side of the quote, the stop from the breakout candle hint.
func (s *Sizer) Size(sig models.Signal, equity float64, quote models.Quote, trailEMAValue float64) (models.SizedOrder, error) {
	if sig.Direction == models.DirectionNone {
		return models.SizedOrder{}, errors.New("signal has no direction")
	}
	if equity <= 0 {
		return models.SizedOrder{}, errors.Errorf("equity %.2f <= 0", equity)
	}

	entry := quote.Ask
	if sig.Direction == models.DirectionShort {
		entry = quote.Bid
	}
	if entry <= 0 {
		return models.SizedOrder{}, errors.Errorf("entry price %.5f <= 0", entry)
	}

	stop := sig.StopLossHint
	stopDist := math.Abs(entry - stop)
	if stopDist == 0 {
		return models.SizedOrder{}, errors.Wrapf(models.ErrInvalidStop, "entry %.5f", entry)
	}

	riskAmount := equity * s.params.RiskFraction
	volume := riskAmount / (stopDist * s.params.PointValue)
	volume = roundDownToStep(volume, s.params.LotStep)
	if volume <= 0 {
		return models.SizedOrder{}, errors.Errorf("volume rounds to zero: risk %.2f, stop distance %.5f", riskAmount, stopDist)
	}

	tp1 := entry + s.params.TakeProfitRR*stopDist
	if sig.Direction == models.DirectionShort {
		tp1 = entry - s.params.TakeProfitRR*stopDist
	}

	return models.SizedOrder{
		Instrument:  sig.Instrument,
		Direction:   sig.Direction,
		Volume:      volume,
		EntryPrice:  entry,
		StopLoss:    stop,
		TakeProfit1: tp1,
		TakeProfit2Rule: models.TrailRule{
			EMAPeriod:     s.params.TrailEMA,
			ValueAtSignal: trailEMAValue,
		},
		RiskAmount: riskAmount,
		Label:      fmt.Sprintf("pattern-%s", sig.Instrument),
	}, nil
}

func roundDownToStep(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Floor(v/step+1e-9) * step
}
