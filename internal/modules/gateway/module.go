package gateway

import (
	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/gateway/service"
)

func Module() fx.Option {
	return fx.Module("gateway",
		fx.Provide(
			func(cfg *config.Config) *service.Client {
				return service.NewClient(service.Config{
					BaseURL:      cfg.Gateway.BaseURL,
					Account:      cfg.Account,
					APIKey:       cfg.Gateway.APIKey,
					APISecret:    cfg.Gateway.APISecret,
					OrderTimeout: cfg.Gateway.OrderTimeout,
					QueryTimeout: cfg.Gateway.QueryTimeout,
				})
			},
		),
	)
}
