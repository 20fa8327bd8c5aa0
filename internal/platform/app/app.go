// Package app assembles the runtime graph shared by the API server and the admin CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/views"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events/kafka"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/platform/config"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/repositories/database/pgsql"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/storage/receipts"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/algoplusmessflow-tech/Messflow-sub001/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App owns every long-lived dependency. Close releases them in reverse order.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Pool      *pgxpool.Pool
	Bus       *events.Bus
	Analytics *utils.PosthogClientWrapper
	Services  *portssvc.ServiceContainer

	closers []func()
}

// New connects to the database and wires repositories, the change bus, the
// optional Kafka mirror, analytics, the report cache and the services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("initializing database pool: %w", err)
	}
	a.Pool = pool
	a.closers = append(a.closers, pool.Close)

	a.Bus = events.NewBus(logger)
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		unsubscribe := a.Bus.Subscribe(events.Filter{}, publisher.Handler())
		a.closers = append(a.closers, func() {
			unsubscribe()
			if err := publisher.Close(); err != nil {
				logger.Error("Failed to close Kafka publisher", slog.String("error", err.Error()))
			}
		})
		logger.Info("Mirroring change events to Kafka", slog.String("topic", cfg.KafkaTopic))
	}

	a.Analytics = utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	a.closers = append(a.closers, a.Analytics.Close)

	cache, err := views.NewReportCache(cfg.ReportCacheSize, a.Bus, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, cache.Close)

	var store portsrepo.ReceiptStore
	if cfg.ReceiptsDir != "" {
		local, err := receipts.NewLocalStore(cfg.ReceiptsDir, cfg.ReceiptsBaseURL, cfg.ReceiptMaxBytes, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("initializing receipt store: %w", err)
		}
		store = local
	} else {
		logger.Warn("RECEIPTS_DIR is empty, receipt uploads disabled")
	}

	a.Services = services.NewServiceContainer(
		pgsql.NewRepositoryProvider(pool),
		store,
		services.WithPublisher(a.Bus),
		services.WithAnalytics(a.Analytics),
		services.WithViewCache(cache),
	)
	return a, nil
}

// Close releases resources. It is safe to call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
