package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/telecom-triage/internal/api/http"
	"github.com/spec-kit/telecom-triage/internal/api/http/handlers"
	"github.com/spec-kit/telecom-triage/internal/auth"
	"github.com/spec-kit/telecom-triage/internal/classifier"
	"github.com/spec-kit/telecom-triage/internal/config"
	"github.com/spec-kit/telecom-triage/internal/embedding"
	"github.com/spec-kit/telecom-triage/internal/events"
	"github.com/spec-kit/telecom-triage/internal/observability"
	"github.com/spec-kit/telecom-triage/internal/persistence"
	"github.com/spec-kit/telecom-triage/internal/repository"
	"github.com/spec-kit/telecom-triage/internal/service"
	"github.com/spec-kit/telecom-triage/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	embedder, err := embedding.NewClient(cfg.Embedding, logger)
	if err != nil {
		logger.Fatal("failed to init embedding client", zap.Error(err))
	}

	// The catalog index embeds once at startup; without it nothing can be
	// classified, so failure here is fatal.
	index, err := classifier.BuildIndex(ctx, embedder, classifier.IntentCatalog(), classifier.TypeCatalog(), logger)
	if err != nil {
		logger.Fatal("failed to build classification index", zap.Error(err))
	}
	engine := classifier.New(embedder, index, cfg.Classifier, logger)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	queryRepo := repository.NewQueryRepository(pool)
	grievanceRepo := repository.NewGrievanceRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	statsCache := service.NewStatsCache(redis.Client, cfg.Redis.StatsTTL(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: userRepo})
	if pool != nil {
		if err := authService.EnsureBootstrapOperator(ctx); err != nil {
			logger.Fatal("failed to seed bootstrap operator", zap.Error(err))
		}
	}
	triageService := service.NewTriageService(service.TriageDependencies{
		Classifier:       engine,
		ConversationRepo: conversationRepo,
		QueryRepo:        queryRepo,
		GrievanceRepo:    grievanceRepo,
		Dispatcher:       dispatcher,
		Metrics:          metrics,
		Cache:            statsCache,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		QueryRepo:     queryRepo,
		GrievanceRepo: grievanceRepo,
		Dispatcher:    dispatcher,
		Cache:         statsCache,
	})
	notificationService := service.NewNotificationService(dispatcher, logger.Named("notifications"), cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Triage:         handlers.NewTriageHandler(triageService),
		Reports:        handlers.NewReportsHandler(reportService),
		Metrics:        handlers.NewMetricsHandler(metrics),
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
