package service

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	detsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector/service"
	monsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/monitor/service"
	risksvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/risk/service"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/logger"
)

// MarketData is the candle/quote collaborator the engine consumes. Candles
// come back oldest-first with no gaps; a short batch is the collaborator's
// problem to report, never to pad.
type MarketData interface {
	Candles(ctx context.Context, instrument, timeframe string, count int) ([]models.Candle, error)
	Quote(ctx context.Context, instrument string) (models.Quote, error)
}

// Analysis is everything one analyze cycle produced. Signal is nil unless
// all three detectors agreed; Rationale always covers every stage that ran.
type Analysis struct {
	Instrument  string
	Snapshot    *structsvc.Snapshot
	Compression models.CompressionResult
	Velocity    models.VelocityResult
	Breakout    models.BreakoutResult
	Divergence  models.DivergenceResult
	Signal      *models.Signal
	Rationale   []models.RationaleEvent
}

// The engine's surface is split into one interface per capability so each
// operation keeps its own input/output contract and can be mocked alone.
type (
	Analyzer interface {
		Analyze(ctx context.Context, instrument string) (*Analysis, error)
	}
	Sizer interface {
		Size(sig *models.Signal, snap *structsvc.Snapshot, equity float64, quote models.Quote) (models.SizedOrder, error)
	}
	Monitor interface {
		Monitor(ctx context.Context, instrument string, positions []models.Position) ([]models.MonitorDecision, error)
	}
)

type Settings struct {
	EntryTimeframe   string
	ContextTimeframe string
	EntryBars        int
	ContextBars      int
}

// Engine wires the pure pipeline to the market-data collaborator. All logic
// below the fetch is deterministic per snapshot, so retrying a failed call
// never re-decides anything.
type Engine struct {
	md       MarketData
	analyzer *structsvc.Analyzer
	detector *detsvc.Detector
	sizer    *risksvc.Sizer
	monitor  *monsvc.Monitor
	settings Settings
}

func NewEngine(
	md MarketData,
	analyzer *structsvc.Analyzer,
	detector *detsvc.Detector,
	sizer *risksvc.Sizer,
	monitor *monsvc.Monitor,
	settings Settings,
) *Engine {
	if settings.EntryBars < structsvc.MinEntryBars {
		settings.EntryBars = structsvc.MinEntryBars
	}
	if settings.ContextBars < structsvc.MinContextBars {
		settings.ContextBars = structsvc.MinContextBars
	}
	return &Engine{
		md:       md,
		analyzer: analyzer,
		detector: detector,
		sizer:    sizer,
		monitor:  monitor,
		settings: settings,
	}
}

func (e *Engine) Analyze(ctx context.Context, instrument string) (*Analysis, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "engine.analyze")
	defer span.Finish()
	span.SetTag("instrument", instrument)

	snap, err := e.buildSnapshot(ctx, instrument)
	if err != nil {
		return nil, err
	}

	out, err := e.detector.Detect(instrument, snap)
	if err != nil {
		return nil, errors.Wrap(err, "detect")
	}

	a := &Analysis{
		Instrument:  instrument,
		Snapshot:    snap,
		Compression: out.Compression,
		Velocity:    out.Velocity,
		Breakout:    out.Breakout,
		Divergence:  out.Divergence,
		Signal:      out.Signal,
		Rationale:   out.Rationale,
	}
	if a.Signal != nil {
		logger.Info("signal %s %s entry~%.5f stop~%.5f",
			instrument, a.Signal.Direction, a.Signal.EntryPriceHint, a.Signal.StopLossHint)
	}
	return a, nil
}

// Size resolves the TP2 trail reference from the snapshot the signal was
// detected on, then delegates to the risk engine.
func (e *Engine) Size(sig *models.Signal, snap *structsvc.Snapshot, equity float64, quote models.Quote) (models.SizedOrder, error) {
	if sig == nil {
		return models.SizedOrder{}, errors.New("no signal to size")
	}
	trailEMA, ok := snap.EMA9.At(sig.SnapshotIndex)
	if !ok {
		return models.SizedOrder{}, errors.Wrapf(models.ErrInsufficientHistory,
			"EMA9 undefined at signal index %d", sig.SnapshotIndex)
	}
	return e.sizer.Size(*sig, equity, quote, trailEMA)
}

func (e *Engine) Monitor(ctx context.Context, instrument string, positions []models.Position) ([]models.MonitorDecision, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "engine.monitor")
	defer span.Finish()
	span.SetTag("instrument", instrument)

	snap, err := e.buildSnapshot(ctx, instrument)
	if err != nil {
		return nil, err
	}
	return e.monitor.AssessAll(instrument, positions, snap)
}

func (e *Engine) buildSnapshot(ctx context.Context, instrument string) (*structsvc.Snapshot, error) {
	entry, err := e.md.Candles(ctx, instrument, e.settings.EntryTimeframe, e.settings.EntryBars)
	if err != nil {
		return nil, errors.Wrap(err, "fetch entry candles")
	}
	contextBars, err := e.md.Candles(ctx, instrument, e.settings.ContextTimeframe, e.settings.ContextBars)
	if err != nil {
		return nil, errors.Wrap(err, "fetch context candles")
	}
	snap, err := e.analyzer.Build(entry, contextBars)
	if err != nil {
		return nil, errors.Wrap(err, "build structure")
	}
	return snap, nil
}
