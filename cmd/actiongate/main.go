package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/aegisops/actiongate/pkg/app/action"
	"github.com/aegisops/actiongate/pkg/app/analyzer"
	"github.com/aegisops/actiongate/pkg/app/escalation"
	"github.com/aegisops/actiongate/pkg/app/gatecheck"
	appincident "github.com/aegisops/actiongate/pkg/app/incident"
	"github.com/aegisops/actiongate/pkg/app/registry"
	"github.com/aegisops/actiongate/pkg/config"
	handlers "github.com/aegisops/actiongate/pkg/handlers/http"
	wsHandlers "github.com/aegisops/actiongate/pkg/handlers/websocket"
	"github.com/aegisops/actiongate/pkg/infra/auth/jwt"
	infraCache "github.com/aegisops/actiongate/pkg/infra/cache"
	"github.com/aegisops/actiongate/pkg/infra/cache/event"
	"github.com/aegisops/actiongate/pkg/infra/cache/subscriber"
	"github.com/aegisops/actiongate/pkg/infra/database"
	infraLogger "github.com/aegisops/actiongate/pkg/infra/logger"
	"github.com/aegisops/actiongate/pkg/infra/notifier"
	"github.com/aegisops/actiongate/pkg/infra/prometheus"
	"github.com/aegisops/actiongate/pkg/infra/ratewindow"
	"github.com/aegisops/actiongate/pkg/infra/repository"
	"github.com/aegisops/actiongate/pkg/middleware"
	"github.com/aegisops/actiongate/pkg/server"
)

const ackDedupeTTL = 10 * time.Minute

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger(os.Getenv("LOG_LEVEL"))

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheClient, err := infraCache.NewClient(infraCache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		logger.Fatalf("failed to initialize redis: %v", err)
	}
	defer cacheClient.Close()

	ackDedupe := cacheClient.CreateTTLMap(infraCache.AckDedupeTTLName, ackDedupeTTL)

	// repository
	blockRepository := repository.NewBlockRepository(db.DB)
	trustRepository := repository.NewTrustRepository(db.DB)
	incidentRepository := repository.NewIncidentRepository(db.DB)

	// redis publisher
	redisPublisher := infraCache.NewRedisEventPublisher(cacheClient)
	redisListener := infraCache.NewRedisEventListener(logger, cacheClient, event.Registry)

	// application services
	recorder := appincident.NewRecorder(logger, incidentRepository)
	blockRegistry := registry.NewService(logger, blockRepository, recorder, redisPublisher)
	window := ratewindow.NewRateWindow(nil)
	gate := gatecheck.NewGate(logger, blockRegistry, trustRepository, window, nil)
	riskAnalyzer := analyzer.NewRiskAnalyzer(cfg.Policy, window)

	operatorNotifier := notifier.NewWebhookNotifier(logger, notifier.Config{
		WebhookURL: cfg.Notifier.WebhookURL,
		AckURL:     cfg.Notifier.AckURL,
		Timeout:    time.Duration(cfg.Notifier.TimeoutSeconds) * time.Second,
	})
	bridge := escalation.NewBridge(logger, blockRegistry, operatorNotifier, redisPublisher, ackDedupe, cfg.Notifier.Enabled)
	processor := action.NewProcessor(logger, gate, riskAnalyzer, recorder, bridge, cfg.Policy)

	jwtManager := jwt.NewJwtManager(cfg.Auth.JWTSecret)

	// websocket fanout
	alertHub := wsHandlers.NewAlertHub(logger)

	// subscribers
	blockStateSubscriber := subscriber.NewBlockStateChangedEventSubscriber(logger, alertHub)
	alertRaisedSubscriber := subscriber.NewAlertRaisedEventSubscriber(logger, alertHub)
	infraCache.RegisterEventSubscriber[event.BlockStateChangedEvent](redisListener, blockStateSubscriber)
	infraCache.RegisterEventSubscriber[event.AlertRaisedEvent](redisListener, alertRaisedSubscriber)

	go redisListener.Listen(ctx, infraCache.EventsChannel)

	// middleware
	middlewareTransport := middleware.NewTransport(
		middleware.NewClientAddressMiddleware(logger),
		middleware.NewMetricsMiddleware(),
	)

	handlerTransport := handlers.HandlerTransport{
		// Actions
		SubmitLoginHandler:      handlers.NewSubmitLoginHandler(logger, processor),
		SubmitUploadHandler:     handlers.NewSubmitUploadHandler(logger, processor),
		SubmitRoleChangeHandler: handlers.NewSubmitRoleChangeHandler(logger, processor),
		// Block registry
		BlockSubjectHandler:   handlers.NewBlockSubjectHandler(logger, blockRegistry),
		UnblockSubjectHandler: handlers.NewUnblockSubjectHandler(logger, blockRegistry),
		ListBlockedHandler:    handlers.NewListBlockedHandler(logger, blockRegistry),
		// Incidents
		ListIncidentsHandler: handlers.NewListIncidentsHandler(logger, incidentRepository),
		// Trusted pairs
		AddTrustedPairHandler:    handlers.NewAddTrustedPairHandler(logger, trustRepository),
		ListTrustedPairsHandler:  handlers.NewListTrustedPairsHandler(logger, trustRepository),
		RemoveTrustedPairHandler: handlers.NewRemoveTrustedPairHandler(logger, trustRepository),
		// Notifier
		NotifierCommandHandler: handlers.NewNotifierCommandHandler(logger, bridge),
	}

	wsHandlerTransport := wsHandlers.HandlerTransport{
		AlertStreamHandler: wsHandlers.NewAlertStreamHandler(logger, alertHub),
	}

	srv := server.NewAdminServer(server.AdminServerDI{
		MiddlewareTransport: middlewareTransport,
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger, jwtManager),
		HandlerTransport:    handlerTransport,
		WSHandlerTransport:  wsHandlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run()
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case <-gctx.Done():
	}

	logger.Info("shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		os.Exit(1)
	}
	if err := g.Wait(); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
	logger.Info("server gracefully stopped")
}
