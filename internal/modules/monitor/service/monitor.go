package service

import (
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	detsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector/service"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

// Monitor evaluates open positions against the latest snapshot. It is a pure
// function of (position, snapshot): no state survives between cycles, every
// needed figure is re-derived.
type Monitor struct {
	detector    *detsvc.Detector
	softStopPct float64 // close below this unrealized percent, e.g. -2
}

func NewMonitor(detector *detsvc.Detector, softStopPct float64) *Monitor {
	if softStopPct >= 0 {
		softStopPct = -2
	}
	return &Monitor{detector: detector, softStopPct: softStopPct}
}

// Assess produces one decision per position. The percent stop here is a
// software-level second safety net, independent of the broker-side stop
// order; divergence only warns, it is an early-exit signal, not a close.
func (m *Monitor) Assess(pos models.Position, snap *structsvc.Snapshot) (models.MonitorDecision, error) {
	if pos.EntryPrice <= 0 {
		return models.MonitorDecision{}, errors.Errorf("position %s has entry %.5f", pos.ID, pos.EntryPrice)
	}
	current := snap.EntryCandles[snap.Current].Close

	move := current - pos.EntryPrice
	if pos.Direction == models.DirectionShort {
		move = pos.EntryPrice - current
	}
	pnl := move * pos.Volume
	pnlPercent := move / pos.EntryPrice * 100

	dec := models.MonitorDecision{
		PositionID: pos.ID,
		Pnl:        pnl,
		PnlPercent: pnlPercent,
	}

	if pnlPercent < m.softStopPct {
		dec.Action = models.ActionClose
		dec.Reason = models.ReasonSoftStopHit
		return dec, nil
	}

	div, err := m.detector.Divergence(snap)
	if err != nil {
		return models.MonitorDecision{}, err
	}
	if div.Detected {
		dec.Action = models.ActionWarn
		dec.Reason = div.Type
		return dec, nil
	}

	dec.Action = models.ActionHold
	dec.Reason = models.ReasonPnlOK
	return dec, nil
}

// AssessAll filters to the snapshot's instrument and assesses each position.
func (m *Monitor) AssessAll(instrument string, positions []models.Position, snap *structsvc.Snapshot) ([]models.MonitorDecision, error) {
	out := make([]models.MonitorDecision, 0, len(positions))
	for _, p := range positions {
		if p.Instrument != instrument {
			continue
		}
		dec, err := m.Assess(p, snap)
		if err != nil {
			return nil, errors.Wrapf(err, "position %s", p.ID)
		}
		out = append(out, dec)
	}
	return out, nil
}
