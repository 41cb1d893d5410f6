package service

import (
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/indicator"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
)

const (
	// MinEntryBars covers EMA200 warmup plus a small buffer.
	MinEntryBars = 210
	// MinContextBars covers EMA200 warmup on the slower series.
	MinContextBars = 200

	emaFastPeriod    = 9
	emaMidPeriod     = 20
	emaSlowPeriod    = 200
	atrPeriod        = 14
	rsiPeriod        = 14
	bollingerPeriod  = 20
	bollingerStdDevs = 2.0
	volumeSMAPeriod  = 20
)

// Snapshot is the immutable per-cycle bundle every detector consumes. It is
// built fresh from freshly fetched candles and replaced, never mutated.
type Snapshot struct {
	EntryCandles   []models.Candle
	ContextCandles []models.Candle

	EMA9   indicator.Series
	EMA20  indicator.Series
	EMA200 indicator.Series
	ATR14  indicator.Series
	Bands  indicator.Bands
	RSI14  indicator.Series
	VolSMA indicator.Series

	Velocity    indicator.Series
	VelocityAvg indicator.Series

	EntryBias   models.Bias
	ContextBias models.Bias

	// Current is the index of the most recent closed entry-timeframe candle.
	Current int
}

// Analyzer builds structure snapshots. Stateless.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Build validates both candle series and computes every indicator the
// detectors need. Insufficient bars is a hard precondition failure: the
// detectors assume fully warmed indicators at the current index.
func (a *Analyzer) Build(entry, context []models.Candle) (*Snapshot, error) {
	if err := models.ValidateCandles(entry); err != nil {
		return nil, errors.Wrap(err, "entry series")
	}
	if err := models.ValidateCandles(context); err != nil {
		return nil, errors.Wrap(err, "context series")
	}
	if len(entry) < MinEntryBars {
		return nil, errors.Wrapf(models.ErrInsufficientHistory,
			"entry series has %d bars, need %d", len(entry), MinEntryBars)
	}
	if len(context) < MinContextBars {
		return nil, errors.Wrapf(models.ErrInsufficientHistory,
			"context series has %d bars, need %d", len(context), MinContextBars)
	}

	entryCloses := indicator.Closes(entry)
	contextCloses := indicator.Closes(context)

	vel := indicator.CandleVelocity(entry)

	snap := &Snapshot{
		EntryCandles:   entry,
		ContextCandles: context,
		EMA9:           indicator.EMA(entryCloses, emaFastPeriod),
		EMA20:          indicator.EMA(entryCloses, emaMidPeriod),
		EMA200:         indicator.EMA(entryCloses, emaSlowPeriod),
		ATR14:          indicator.ATR(entry, atrPeriod),
		Bands:          indicator.Bollinger(entryCloses, bollingerPeriod, bollingerStdDevs),
		RSI14:          indicator.RSI(entryCloses, rsiPeriod),
		VolSMA:         indicator.VolumeSMA(entry, volumeSMAPeriod),
		Velocity:       vel,
		VelocityAvg:    indicator.VelocityAverage(vel),
		Current:        len(entry) - 1,
	}

	var err error
	if snap.EntryBias, err = bias(snap.EMA20, snap.EMA200); err != nil {
		return nil, errors.Wrap(err, "entry bias")
	}

	ctxEMA20 := indicator.EMA(contextCloses, emaMidPeriod)
	ctxEMA200 := indicator.EMA(contextCloses, emaSlowPeriod)
	if snap.ContextBias, err = bias(ctxEMA20, ctxEMA200); err != nil {
		return nil, errors.Wrap(err, "context bias")
	}

	return snap, nil
}

func bias(ema20, ema200 indicator.Series) (models.Bias, error) {
	fast, ok1 := ema20.Last()
	slow, ok2 := ema200.Last()
	if !ok1 || !ok2 {
		return "", errors.Wrap(models.ErrInsufficientHistory, "EMA not warmed at latest index")
	}
	if fast > slow {
		return models.BiasBullish, nil
	}
	return models.BiasBearish, nil
}
