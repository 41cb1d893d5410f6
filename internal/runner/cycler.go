package runner

import (
	"context"
	"sync"
	"time"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	enginesvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/engine/service"
	journalsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/journal/service"
	mdsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/marketdata/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/notify"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/logger"
)

// Gateway is the broker surface the runner drives. Position state lives on
// the broker side; the runner only reads it and submits.
type Gateway interface {
	SubmitOrder(ctx context.Context, order models.SizedOrder) (string, error)
	SubmitClose(ctx context.Context, positionID string, reason models.Reason) error
	Positions(ctx context.Context) ([]models.Position, error)
	Equity(ctx context.Context) (float64, error)
}

// CycleObserver hears about completed cycles. The status endpoint hangs off
// this to report loop liveness.
type CycleObserver interface {
	TouchCycle(t time.Time)
}

type Deps struct {
	Analyzer enginesvc.Analyzer
	Sizer    enginesvc.Sizer
	Monitor  enginesvc.Monitor
	Market   enginesvc.MarketData
	Stream   *mdsvc.Stream
	Gateway  Gateway
	Journal  journalsvc.Store
	Notifier notify.Notifier
	Observer CycleObserver
}

type Settings struct {
	PollInterval   time.Duration
	UseStream      bool
	EntryTimeframe string
}

// Cycler runs the analyze/act/monitor loop for one instrument. Triggers come
// either from a ticker or from closed candles on the stream; a cycle that is
// still running swallows the next trigger instead of stacking.
type Cycler struct {
	instrument string
	deps       Deps
	settings   Settings

	mu       sync.Mutex
	inFlight bool
}

func NewCycler(instrument string, deps Deps, settings Settings) *Cycler {
	if settings.PollInterval <= 0 {
		settings.PollInterval = time.Minute
	}
	return &Cycler{
		instrument: instrument,
		deps:       deps,
		settings:   settings,
	}
}

func (c *Cycler) Run(ctx context.Context) {
	if c.settings.UseStream && c.deps.Stream != nil {
		c.runOnStream(ctx)
		return
	}
	c.runOnTicker(ctx)
}

func (c *Cycler) runOnTicker(ctx context.Context) {
	ticker := time.NewTicker(c.settings.PollInterval)
	defer ticker.Stop()

	c.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cycle(ctx)
		}
	}
}

func (c *Cycler) runOnStream(ctx context.Context) {
	ticks := c.deps.Stream.Subscribe(ctx, []string{c.instrument}, c.settings.EntryTimeframe)
	for {
		select {
		case <-ctx.Done():
			return
		case tick, ok := <-ticks:
			if !ok {
				return
			}
			if tick.Instrument != c.instrument {
				continue
			}
			c.cycle(ctx)
		}
	}
}

// cycle is one full pass: analyze, maybe enter, then monitor whatever is
// open. Collaborator failures skip the affected step and leave the broker
// state alone.
func (c *Cycler) cycle(ctx context.Context) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		logger.Info("%s: previous cycle still running, skipping", c.instrument)
		return
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
		if c.deps.Observer != nil {
			c.deps.Observer.TouchCycle(time.Now())
		}
	}()

	analysis, err := c.deps.Analyzer.Analyze(ctx, c.instrument)
	if err != nil {
		logger.Error("%s: analyze: %v", c.instrument, err)
		return
	}
	c.journal(ctx, analysis.Rationale)

	positions, err := c.deps.Gateway.Positions(ctx)
	if err != nil {
		logger.Error("%s: positions: %v", c.instrument, err)
		return
	}

	if analysis.Signal != nil && !hasOpenPosition(positions, c.instrument) {
		c.enter(ctx, analysis)
	}

	c.monitorOpen(ctx, positions)
}

func (c *Cycler) enter(ctx context.Context, analysis *enginesvc.Analysis) {
	equity, err := c.deps.Gateway.Equity(ctx)
	if err != nil {
		logger.Error("%s: equity: %v", c.instrument, err)
		return
	}
	quote, err := c.deps.Market.Quote(ctx, c.instrument)
	if err != nil {
		logger.Error("%s: quote: %v", c.instrument, err)
		return
	}

	order, err := c.deps.Sizer.Size(analysis.Signal, analysis.Snapshot, equity, quote)
	if err != nil {
		logger.Error("%s: size: %v", c.instrument, err)
		return
	}

	orderID, err := c.deps.Gateway.SubmitOrder(ctx, order)
	if err != nil {
		logger.Error("%s: submit order: %v", c.instrument, err)
		c.deps.Notifier.Sendf("order failed for %s: %v", c.instrument, err)
		return
	}

	logger.Info("%s: order %s submitted, %s vol=%.2f", c.instrument, orderID, order.Direction, order.Volume)
	c.journal(ctx, []models.RationaleEvent{{
		Stage: "execution",
		Code:  models.ReasonOrderSubmitted,
		Params: map[string]float64{
			"volume":      order.Volume,
			"entry":       order.EntryPrice,
			"stop":        order.StopLoss,
			"takeProfit1": order.TakeProfit1,
			"riskAmount":  order.RiskAmount,
		},
	}})
	c.deps.Notifier.Send(notify.OrderMessage(order))
	c.deps.Notifier.Send(notify.RationaleMessage(c.instrument, analysis.Rationale))
}

func (c *Cycler) monitorOpen(ctx context.Context, positions []models.Position) {
	mine := 0
	for _, p := range positions {
		if p.Instrument == c.instrument {
			mine++
		}
	}
	if mine == 0 {
		return
	}

	decisions, err := c.deps.Monitor.Monitor(ctx, c.instrument, positions)
	if err != nil {
		logger.Error("%s: monitor: %v", c.instrument, err)
		return
	}

	for _, dec := range decisions {
		switch dec.Action {
		case models.ActionClose:
			if err := c.deps.Gateway.SubmitClose(ctx, dec.PositionID, dec.Reason); err != nil {
				logger.Error("%s: close %s: %v", c.instrument, dec.PositionID, err)
				c.deps.Notifier.Sendf("close failed for %s: %v", dec.PositionID, err)
				continue
			}
			c.deps.Notifier.Send(notify.DecisionMessage(c.instrument, dec))
		case models.ActionWarn:
			c.deps.Notifier.Send(notify.DecisionMessage(c.instrument, dec))
		}
		c.journal(ctx, []models.RationaleEvent{{
			Stage: "monitor",
			Code:  dec.Reason,
			Params: map[string]float64{
				"pnl":        dec.Pnl,
				"pnlPercent": dec.PnlPercent,
			},
		}})
	}
}

// journal never fails a cycle: persistence is audit, not control flow.
func (c *Cycler) journal(ctx context.Context, events []models.RationaleEvent) {
	if c.deps.Journal == nil || len(events) == 0 {
		return
	}
	entries := journalsvc.FromRationale(c.instrument, time.Now().UTC(), events)
	if err := c.deps.Journal.Record(ctx, entries); err != nil {
		logger.Error("%s: journal: %v", c.instrument, err)
	}
}

func hasOpenPosition(positions []models.Position, instrument string) bool {
	for _, p := range positions {
		if p.Instrument == instrument {
			return true
		}
	}
	return false
}
