package monitor

import (
	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	detsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/monitor/service"
)

func Module() fx.Option {
	return fx.Module("monitor",
		fx.Provide(
			func(cfg *config.Config, d *detsvc.Detector) *service.Monitor {
				return service.NewMonitor(d, cfg.Risk.SoftStopPct)
			},
		),
	)
}
