package notifier

import (
	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/notify"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/logger"
)

// Module provides the outbound notifier. No token means stdout, the engine
// runs the same either way.
func Module() fx.Option {
	return fx.Module("notifier",
		fx.Provide(
			func(cfg *config.Config) (notify.Notifier, error) {
				if cfg.Telegram.Token == "" {
					logger.Info("notifier: no telegram token, using stdout")
					return notify.NewStdout(), nil
				}
				return notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
			},
		),
	)
}
