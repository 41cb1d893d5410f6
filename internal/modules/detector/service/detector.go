package service

import (
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

// Params are the detection thresholds. Defaults come from the desk settings
// the strategy was tuned with; config may override them per deployment.
type Params struct {
	CompressionLookback int     // candles inspected before the current one
	CompressionMinCount int     // narrow candles required within the lookback
	CompressionATRFrac  float64 // "narrow" means range < frac * ATR(current)
	VelocityRatioMin    float64
	VolumeRatioMin      float64
	RSILongMin          float64
	RSIShortMax         float64
	DivergenceLookback  int
}

func DefaultParams() Params {
	return Params{
		CompressionLookback: 5,
		CompressionMinCount: 3,
		CompressionATRFrac:  0.5,
		VelocityRatioMin:    2.5,
		VolumeRatioMin:      1.5,
		RSILongMin:          55,
		RSIShortMax:         45,
		DivergenceLookback:  10,
	}
}

// Detector runs the three cooperating sub-detectors plus the divergence
// side-check over a structure snapshot. Stateless; the same snapshot always
// yields the same outcome.
type Detector struct {
	p Params
}

func NewDetector(p Params) *Detector { return &Detector{p: p} }

// Outcome bundles everything one detection pass produced. Signal is nil
// unless compression, velocity spike and breakout all agreed.
type Outcome struct {
	Compression models.CompressionResult
	Velocity    models.VelocityResult
	Breakout    models.BreakoutResult
	Divergence  models.DivergenceResult
	Signal      *models.Signal
	Rationale   []models.RationaleEvent
}

// Detect runs the sub-detectors in order. Compression and velocity are
// direction-free; direction is decided only at the breakout step.
func (d *Detector) Detect(instrument string, snap *structsvc.Snapshot) (*Outcome, error) {
	out := &Outcome{}

	var err error
	if out.Compression, err = d.Compression(snap); err != nil {
		return nil, err
	}
	out.Rationale = append(out.Rationale, models.RationaleEvent{
		Stage: "compression",
		Code:  out.Compression.Reason,
		Params: map[string]float64{
			"count":    float64(out.Compression.CompressionCount),
			"lookback": float64(out.Compression.Lookback),
			"atr":      out.Compression.ATRAtEvaluation,
		},
	})

	if out.Velocity, err = d.VelocitySpike(snap); err != nil {
		return nil, err
	}
	out.Rationale = append(out.Rationale, models.RationaleEvent{
		Stage: "velocity",
		Code:  out.Velocity.Reason,
		Params: map[string]float64{
			"velocityRatio": out.Velocity.VelocityRatio,
			"volumeRatio":   out.Velocity.VolumeRatio,
		},
	})

	if out.Breakout, err = d.Breakout(snap, out.Compression, out.Velocity); err != nil {
		return nil, err
	}
	out.Rationale = append(out.Rationale, models.RationaleEvent{
		Stage: "breakout",
		Code:  out.Breakout.Reason,
		Params: map[string]float64{
			"rangeHigh": out.Breakout.RangeHigh,
			"rangeLow":  out.Breakout.RangeLow,
			"close":     out.Breakout.ClosePrice,
			"rsi":       out.Breakout.RSI,
		},
	})

	if out.Divergence, err = d.Divergence(snap); err != nil {
		return nil, err
	}
	out.Rationale = append(out.Rationale, models.RationaleEvent{
		Stage: "divergence",
		Code:  out.Divergence.Type,
	})

	if out.Breakout.Signal != models.DirectionNone {
		cur := snap.EntryCandles[snap.Current]
		stop := cur.Low
		if out.Breakout.Signal == models.DirectionShort {
			stop = cur.High
		}
		out.Signal = &models.Signal{
			Instrument:     instrument,
			Direction:      out.Breakout.Signal,
			EntryPriceHint: cur.Close,
			StopLossHint:   stop,
			SnapshotIndex:  snap.Current,
		}
	}
	return out, nil
}
