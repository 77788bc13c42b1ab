package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/rashmods/helpdesk/internal/api/http"
	"github.com/rashmods/helpdesk/internal/api/http/handlers"
	"github.com/rashmods/helpdesk/internal/auth"
	"github.com/rashmods/helpdesk/internal/clock"
	"github.com/rashmods/helpdesk/internal/config"
	"github.com/rashmods/helpdesk/internal/events"
	"github.com/rashmods/helpdesk/internal/gateway"
	"github.com/rashmods/helpdesk/internal/observability"
	"github.com/rashmods/helpdesk/internal/persistence"
	"github.com/rashmods/helpdesk/internal/repository"
	"github.com/rashmods/helpdesk/internal/scheduler"
	"github.com/rashmods/helpdesk/internal/service"
	"github.com/rashmods/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), os.DirFS("migrations"), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var gw gateway.Gateway = gateway.NewLogGateway(logger)
	if redis.Client != nil {
		gw = gateway.WithRedisArchive(gw, redis.Client, logger)
	}
	if pg.PoolHandle() != nil {
		gw = gateway.WithPostgresArchive(gw, pg.PoolHandle(), logger)
	}

	ticketRepo := repository.NewTicketRepository()
	ledgerRepo := repository.NewLedgerRepository()
	counterRepo := repository.NewCounterRepository()

	ticketService := service.NewTicketService(cfg.Ticket, service.TicketDependencies{
		TicketRepo:  ticketRepo,
		LedgerRepo:  ledgerRepo,
		CounterRepo: counterRepo,
		Gateway:     gw,
		Scheduler:   scheduler.NewTimerScheduler(logger),
		Clock:       clock.System(),
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	analyticsService := service.NewAnalyticsService(ticketRepo, ledgerRepo)
	ticketService.AnnounceEntry(ctx)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Dashboard:      handlers.NewDashboardHandler(analyticsService, redis, cfg.Ticket.LogDestination),
		Points:         handlers.NewPointsHandler(ticketService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
