package runner

import (
	"context"

	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	enginesvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/engine/service"
	gwsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/gateway/service"
	journalsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/journal/service"
	mdsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/marketdata/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/notify"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(gw *gwsvc.Client) Gateway { return gw },
			func(
				cfg *config.Config,
				analyzer enginesvc.Analyzer,
				sizer enginesvc.Sizer,
				monitor enginesvc.Monitor,
				market enginesvc.MarketData,
				stream *mdsvc.Stream,
				gw Gateway,
				store journalsvc.Store,
				n notify.Notifier,
				obs CycleObserver,
			) *Manager {
				return NewManager(Deps{
					Analyzer: analyzer,
					Sizer:    sizer,
					Monitor:  monitor,
					Market:   market,
					Stream:   stream,
					Gateway:  gw,
					Journal:  store,
					Notifier: n,
					Observer: obs,
				}, Settings{
					PollInterval:   cfg.Runner.PollInterval,
					UseStream:      cfg.Runner.UseStream,
					EntryTimeframe: cfg.Timeframes.Entry,
				})
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, m *Manager) {
			appCtx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					return m.Start(appCtx, cfg.Instruments)
				},
				OnStop: func(_ context.Context) error {
					cancel()
					m.Stop()
					return nil
				},
			})
		}),
	)
}
