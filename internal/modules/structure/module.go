package structure

import (
	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

func Module() fx.Option {
	return fx.Module("structure",
		fx.Provide(
			service.NewAnalyzer,
		),
	)
}
