package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/api/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	gwsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/gateway/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/runner"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("api",
		fx.Provide(
			service.NewState,
			func(state *service.State) runner.CycleObserver { return state },
			func(gw *gwsvc.Client) service.PositionSource { return gw },
			func(m *runner.Manager) service.Runners { return m },
			service.NewServer,
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, s *service.Server, state *service.State) {
			addr := fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.Port)
			srv := &http.Server{
				Addr:              addr,
				Handler:           s.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					ln, err := net.Listen("tcp", addr)
					if err != nil {
						return err
					}
					go func() { _ = srv.Serve(ln) }()
					state.SetReady(true)
					logger.Info("http api listening on %s", addr)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					state.SetReady(false)
					return srv.Shutdown(ctx)
				},
			})
		}),
	)
}
