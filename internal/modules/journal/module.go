package journal

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/journal/service"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/db"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/logger"
)

// Module provides the rationale store. With a DSN configured it runs on
// postgres; without one it degrades to the in-memory ring.
func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			func(lc fx.Lifecycle, cfg *config.Config) (service.Store, error) {
				if cfg.Journal.DSN == "" {
					logger.Info("journal: no DSN configured, using in-memory store")
					return service.NewMemStore(0), nil
				}

				pool, err := db.NewPool(context.Background(), db.PoolConfig{DSN: cfg.Journal.DSN})
				if err != nil {
					return nil, fmt.Errorf("failed to create journal pool: %w", err)
				}
				manager := db.NewPgTxManager(pool)
				store := service.NewPgStore(manager)

				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						if err := pool.Ping(ctx); err != nil {
							return err
						}
						return store.Migrate(ctx)
					},
					OnStop: func(ctx context.Context) error {
						manager.Close()
						return nil
					},
				})
				return store, nil
			},
		),
	)
}
