package runner

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	enginesvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/engine/service"
	journalsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/journal/service"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

type fakeAnalyzer struct {
	analysis *enginesvc.Analysis
	err      error
}

func (f *fakeAnalyzer) Analyze(context.Context, string) (*enginesvc.Analysis, error) {
	return f.analysis, f.err
}

type fakeSizer struct {
	order models.SizedOrder
	err   error
}

func (f *fakeSizer) Size(*models.Signal, *structsvc.Snapshot, float64, models.Quote) (models.SizedOrder, error) {
	return f.order, f.err
}

type fakeMonitor struct {
	decisions []models.MonitorDecision
}

func (f *fakeMonitor) Monitor(context.Context, string, []models.Position) ([]models.MonitorDecision, error) {
	return f.decisions, nil
}

type fakeQuoter struct{}

func (fakeQuoter) Candles(context.Context, string, string, int) ([]models.Candle, error) {
	return nil, errors.New("not used")
}

func (fakeQuoter) Quote(context.Context, string) (models.Quote, error) {
	return models.Quote{Instrument: "US30", Bid: 103.9, Ask: 104.1}, nil
}

type fakeGateway struct {
	positions []models.Position
	equityErr error

	submitted []models.SizedOrder
	closed    []string
}

func (f *fakeGateway) SubmitOrder(_ context.Context, order models.SizedOrder) (string, error) {
	f.submitted = append(f.submitted, order)
	return "ord-1", nil
}

func (f *fakeGateway) SubmitClose(_ context.Context, positionID string, _ models.Reason) error {
	f.closed = append(f.closed, positionID)
	return nil
}

func (f *fakeGateway) Positions(context.Context) ([]models.Position, error) {
	return f.positions, nil
}

func (f *fakeGateway) Equity(context.Context) (float64, error) {
	if f.equityErr != nil {
		return 0, f.equityErr
	}
	return 10000, nil
}

type fakeObserver struct {
	touched []time.Time
}

func (f *fakeObserver) TouchCycle(t time.Time) { f.touched = append(f.touched, t) }

type nopNotifier struct{}

func (nopNotifier) Send(string)          {}
func (nopNotifier) Sendf(string, ...any) {}

func longAnalysis() *enginesvc.Analysis {
	return &enginesvc.Analysis{
		Instrument: "US30",
		Signal: &models.Signal{
			Instrument:     "US30",
			Direction:      models.DirectionLong,
			EntryPriceHint: 104,
			StopLossHint:   100,
		},
		Rationale: []models.RationaleEvent{
			{Stage: "compression", Code: models.ReasonCompressionFound},
			{Stage: "breakout", Code: models.ReasonBreakoutLong},
		},
	}
}

func newTestCycler(analyzer enginesvc.Analyzer, gw *fakeGateway, store journalsvc.Store, mon enginesvc.Monitor) *Cycler {
	if mon == nil {
		mon = &fakeMonitor{}
	}
	return NewCycler("US30", Deps{
		Analyzer: analyzer,
		Sizer:    &fakeSizer{order: models.SizedOrder{Instrument: "US30", Direction: models.DirectionLong, Volume: 4}},
		Monitor:  mon,
		Market:   fakeQuoter{},
		Gateway:  gw,
		Journal:  store,
		Notifier: nopNotifier{},
	}, Settings{})
}

func TestCycleSubmitsOnSignal(t *testing.T) {
	gw := &fakeGateway{}
	store := journalsvc.NewMemStore(100)
	c := newTestCycler(&fakeAnalyzer{analysis: longAnalysis()}, gw, store, nil)

	c.cycle(context.Background())

	if len(gw.submitted) != 1 || gw.submitted[0].Volume != 4 {
		t.Fatalf("submitted: %+v", gw.submitted)
	}
	entries, _ := store.Recent(context.Background(), "US30", 10)
	if len(entries) != 3 {
		t.Fatalf("rationale plus submission must be journaled, got %d entries", len(entries))
	}
	if entries[0].Code != models.ReasonOrderSubmitted {
		t.Fatalf("newest entry must be the submission, got %s", entries[0].Code)
	}
}

func TestCycleTouchesObserver(t *testing.T) {
	obs := &fakeObserver{}
	c := newTestCycler(&fakeAnalyzer{analysis: longAnalysis()}, &fakeGateway{}, journalsvc.NewMemStore(100), nil)
	c.deps.Observer = obs

	c.cycle(context.Background())

	if len(obs.touched) != 1 {
		t.Fatalf("observer must hear one completed cycle, got %d", len(obs.touched))
	}
	if time.Since(obs.touched[0]) > time.Minute {
		t.Fatalf("stale touch: %v", obs.touched[0])
	}
}

func TestCycleTouchesObserverOnAnalyzeFailure(t *testing.T) {
	// A failed cycle still ran; liveness reporting must not depend on the
	// feed being up.
	obs := &fakeObserver{}
	c := newTestCycler(&fakeAnalyzer{err: errors.Wrap(models.ErrUpstreamUnavailable, "feed down")}, &fakeGateway{}, journalsvc.NewMemStore(100), nil)
	c.deps.Observer = obs

	c.cycle(context.Background())

	if len(obs.touched) != 1 {
		t.Fatalf("observer must hear the cycle, got %d", len(obs.touched))
	}
}

func TestCycleSkipsEntryWithOpenPosition(t *testing.T) {
	gw := &fakeGateway{positions: []models.Position{
		{ID: "p1", Instrument: "US30", Direction: models.DirectionLong, EntryPrice: 104, Volume: 4},
	}}
	c := newTestCycler(&fakeAnalyzer{analysis: longAnalysis()}, gw, journalsvc.NewMemStore(100), nil)

	c.cycle(context.Background())

	if len(gw.submitted) != 0 {
		t.Fatalf("must not stack entries on an open position, got %+v", gw.submitted)
	}
}

func TestCycleClosesOnDecision(t *testing.T) {
	gw := &fakeGateway{positions: []models.Position{
		{ID: "p1", Instrument: "US30", Direction: models.DirectionLong, EntryPrice: 104, Volume: 4},
	}}
	mon := &fakeMonitor{decisions: []models.MonitorDecision{
		{PositionID: "p1", Action: models.ActionClose, Reason: models.ReasonSoftStopHit, PnlPercent: -2.1},
	}}
	analysis := longAnalysis()
	analysis.Signal = nil
	c := newTestCycler(&fakeAnalyzer{analysis: analysis}, gw, journalsvc.NewMemStore(100), mon)

	c.cycle(context.Background())

	if len(gw.closed) != 1 || gw.closed[0] != "p1" {
		t.Fatalf("closed: %v", gw.closed)
	}
}

func TestCycleAnalyzeFailureSubmitsNothing(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestCycler(&fakeAnalyzer{err: errors.Wrap(models.ErrUpstreamUnavailable, "feed down")}, gw, journalsvc.NewMemStore(100), nil)

	c.cycle(context.Background())

	if len(gw.submitted) != 0 || len(gw.closed) != 0 {
		t.Fatalf("failed analyze must leave the broker alone")
	}
}

func TestCycleEquityFailureSkipsEntry(t *testing.T) {
	gw := &fakeGateway{equityErr: errors.New("gateway down")}
	c := newTestCycler(&fakeAnalyzer{analysis: longAnalysis()}, gw, journalsvc.NewMemStore(100), nil)

	c.cycle(context.Background())

	if len(gw.submitted) != 0 {
		t.Fatalf("no equity, no order: %+v", gw.submitted)
	}
}
