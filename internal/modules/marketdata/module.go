package marketdata

import (
	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	enginesvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/engine/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/marketdata/service"
)

func Module() fx.Option {
	return fx.Module("marketdata",
		fx.Provide(
			func(cfg *config.Config) service.Config {
				return service.Config{
					BaseURL:        cfg.MarketData.BaseURL,
					WSURL:          cfg.MarketData.WSURL,
					APIKey:         cfg.MarketData.APIKey,
					QuoteTimeout:   cfg.MarketData.QuoteTimeout,
					CandlesTimeout: cfg.MarketData.CandlesTimeout,
				}
			},
			service.NewClient,
			service.NewStream,
			func(c *service.Client) enginesvc.MarketData { return c },
		),
	)
}
