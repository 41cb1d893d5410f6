package main

import (
	"context"
	"log"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/api"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/config"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/detector"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/engine"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/gateway"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/journal"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/marketdata"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/monitor"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/notifier"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/risk"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/runner"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/logger"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/tracing"
)

func main() {
	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		fx.Invoke(func(cfg *config.Config) error {
			zl, err := zap.NewProduction()
			if err != nil {
				return err
			}
			logger.Init(zl)
			logger.SetServiceName(cfg.Service.Name)
			tracing.SetServiceName(cfg.Service.Name)

			_, closer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				logger.Error("tracing disabled: %v", err)
				return nil
			}
			_ = closer // closed with the process
			return nil
		}),
		structure.Module(),
		detector.Module(),
		risk.Module(),
		monitor.Module(),
		marketdata.Module(),
		gateway.Module(),
		journal.Module(),
		notifier.Module(),
		engine.Module(),
		runner.Module(),
		api.Module(),
	)
	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
	<-app.Done()
	if err := app.Stop(context.Background()); err != nil {
		log.Fatal(err)
	}
}
