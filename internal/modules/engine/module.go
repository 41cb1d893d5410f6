package engine

import (
	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	detsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/engine/service"
	monsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/monitor/service"
	risksvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/risk/service"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

func Module() fx.Option {
	return fx.Module("engine",
		fx.Provide(
			func(
				cfg *config.Config,
				md service.MarketData,
				analyzer *structsvc.Analyzer,
				detector *detsvc.Detector,
				sizer *risksvc.Sizer,
				monitor *monsvc.Monitor,
			) *service.Engine {
				return service.NewEngine(md, analyzer, detector, sizer, monitor, service.Settings{
					EntryTimeframe:   cfg.Timeframes.Entry,
					ContextTimeframe: cfg.Timeframes.Context,
					EntryBars:        cfg.History.EntryBars,
					ContextBars:      cfg.History.ContextBars,
				})
			},
			func(e *service.Engine) service.Analyzer { return e },
			func(e *service.Engine) service.Sizer { return e },
			func(e *service.Engine) service.Monitor { return e },
		),
	)
}
