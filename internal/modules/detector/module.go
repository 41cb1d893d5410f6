package detector

import (
	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector/service"
)

func Module() fx.Option {
	return fx.Module("detector",
		fx.Provide(
			func(cfg *config.Config) *service.Detector {
				return service.NewDetector(cfg.DetectorParams())
			},
		),
	)
}
