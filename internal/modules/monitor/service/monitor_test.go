package service

import (
	"testing"
	"time"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	detsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector/service"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

// buildSnapshot returns a 300-bar alternating series. With weakHigh the last
// bar pokes a new high on a near-zero body, which trips the divergence check.
func buildSnapshot(t *testing.T, weakHigh bool) *structsvc.Snapshot {
	t.Helper()
	entry := make([]models.Candle, 0, 300)
	ts := time.Unix(1700000000, 0)
	prevClose := 100.0
	for i := 0; i < 300; i++ {
		open := prevClose
		var close float64
		if i%2 == 0 {
			close = open + 0.5
		} else {
			close = open - 0.5
		}
		hi, lo := open, close
		if close > hi {
			hi = close
		}
		if close < lo {
			lo = close
		}
		c := models.Candle{
			Ts: ts.Add(time.Duration(i) * time.Minute),
			Open: open, High: hi + 0.5, Low: lo - 0.5, Close: close,
			Volume: 1000,
		}
		if weakHigh && i == 299 {
			c.Close = open + 0.05
			c.High = 102.5
			c.Low = open - 0.6
		}
		entry = append(entry, c)
		prevClose = c.Close
	}

	context := make([]models.Candle, 210)
	cts := time.Unix(1600000000, 0)
	for i := range context {
		p := 90 + float64(i)*0.1
		context[i] = models.Candle{
			Ts: cts.Add(time.Duration(i) * time.Hour),
			Open: p, High: p + 0.6, Low: p - 0.6, Close: p + 0.1,
			Volume: 1000,
		}
	}

	snap, err := structsvc.NewAnalyzer().Build(entry, context)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return snap
}

func newMonitor() *Monitor {
	return NewMonitor(detsvc.NewDetector(detsvc.DefaultParams()), -2)
}

func TestAssessSoftStopClose(t *testing.T) {
	m := newMonitor()
	snap := buildSnapshot(t, false)
	current := snap.EntryCandles[snap.Current].Close

	// Entry chosen so the long is down exactly 2.1%.
	pos := models.Position{
		ID: "POS_1", Instrument: "US30",
		Direction:  models.DirectionLong,
		EntryPrice: current / 0.979,
		Volume:     2,
	}
	dec, err := m.Assess(pos, snap)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if dec.Action != models.ActionClose || dec.Reason != models.ReasonSoftStopHit {
		t.Fatalf("want close at -2.1%%, got %+v", dec)
	}
	if dec.Pnl >= 0 {
		t.Fatalf("losing long must report negative pnl, got %v", dec.Pnl)
	}
}

func TestAssessHoldInsideSoftStop(t *testing.T) {
	m := newMonitor()
	snap := buildSnapshot(t, false)
	current := snap.EntryCandles[snap.Current].Close

	// Down 1.9%: inside the net, and no divergence on this series.
	pos := models.Position{
		ID: "POS_2", Instrument: "US30",
		Direction:  models.DirectionLong,
		EntryPrice: current / 0.981,
		Volume:     2,
	}
	dec, err := m.Assess(pos, snap)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if dec.Action != models.ActionHold || dec.Reason != models.ReasonPnlOK {
		t.Fatalf("want hold at -1.9%%, got %+v", dec)
	}
}

func TestAssessWarnOnDivergence(t *testing.T) {
	m := newMonitor()
	snap := buildSnapshot(t, true)
	current := snap.EntryCandles[snap.Current].Close

	// P&L fine, but the latest bar made a new high without conviction.
	pos := models.Position{
		ID: "POS_3", Instrument: "US30",
		Direction:  models.DirectionLong,
		EntryPrice: current / 1.01,
		Volume:     1,
	}
	dec, err := m.Assess(pos, snap)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if dec.Action != models.ActionWarn || dec.Reason != models.ReasonDivergenceBullish {
		t.Fatalf("want divergence warn, got %+v", dec)
	}
}

func TestAssessShortPnlSign(t *testing.T) {
	m := newMonitor()
	snap := buildSnapshot(t, false)
	current := snap.EntryCandles[snap.Current].Close

	// Short opened above the current price is in profit.
	pos := models.Position{
		ID: "POS_4", Instrument: "US30",
		Direction:  models.DirectionShort,
		EntryPrice: current * 1.01,
		Volume:     3,
	}
	dec, err := m.Assess(pos, snap)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if dec.Pnl <= 0 || dec.Action != models.ActionHold {
		t.Fatalf("profitable short must hold with positive pnl, got %+v", dec)
	}
}

func TestAssessAllFiltersInstrument(t *testing.T) {
	m := newMonitor()
	snap := buildSnapshot(t, false)

	positions := []models.Position{
		{ID: "A", Instrument: "US30", Direction: models.DirectionLong, EntryPrice: 100, Volume: 1},
		{ID: "B", Instrument: "SPX", Direction: models.DirectionLong, EntryPrice: 100, Volume: 1},
	}
	decs, err := m.AssessAll("US30", positions, snap)
	if err != nil {
		t.Fatalf("AssessAll: %v", err)
	}
	if len(decs) != 1 || decs[0].PositionID != "A" {
		t.Fatalf("want only US30 positions assessed, got %+v", decs)
	}
}
