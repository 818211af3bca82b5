package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/unifin/internal/api/http"
	"github.com/spec-kit/unifin/internal/api/http/handlers"
	"github.com/spec-kit/unifin/internal/auth"
	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/config"
	"github.com/spec-kit/unifin/internal/events"
	"github.com/spec-kit/unifin/internal/observability"
	"github.com/spec-kit/unifin/internal/persistence"
	"github.com/spec-kit/unifin/internal/repository"
	"github.com/spec-kit/unifin/internal/service"
	"github.com/spec-kit/unifin/internal/session"
	"github.com/spec-kit/unifin/internal/wallet"
	"github.com/spec-kit/unifin/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	if cfg.Postgres.RunMigrations && pg.Configured() {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var provider wallet.Provider
	rpcProvider, err := wallet.NewRPCProvider(ctx, cfg.Chain.RPCURL, cfg.Chain.AccountsPollInterval, logger)
	if err != nil {
		logger.Warn("wallet provider unavailable", zap.String("rpc_url", cfg.Chain.RPCURL), zap.Error(err))
	} else {
		provider = rpcProvider
		defer rpcProvider.Close()
	}

	var publisher events.Publisher = &events.NoopPublisher{}
	if cfg.Events.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.Events.NATSURL)
		if err != nil {
			logger.Warn("nats unavailable; events stay in process", zap.Error(err))
		} else {
			publisher = natsPublisher
		}
	}
	defer publisher.Close() //nolint:errcheck

	contracts, err := chain.NewContracts(cfg.Contracts)
	if err != nil {
		logger.Fatal("invalid contract configuration", zap.Error(err))
	}

	creds, err := auth.NewCredentialTable(auth.SampleCredentials, bcryptCost(cfg.Auth.BcryptCost))
	if err != nil {
		logger.Fatal("failed to build credential table", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	callLog := repository.NewCallLogRepository(pg.PoolHandle())
	invoker := chain.NewInvoker(chain.InvokerConfig{
		SupportedChainIDs:    cfg.Chain.SupportedChainIDs,
		ReceiptPollInterval:  cfg.Chain.ReceiptPollInterval,
		TxTimeout:            cfg.Chain.TxTimeout,
		GasBufferPercent:     cfg.Chain.GasBufferPercent,
		BalanceBufferPercent: cfg.Chain.BalanceBufferPercent,
	}, callLog, metrics, logger)
	deps := service.ChainDependencies{Invoker: invoker, Contracts: contracts, Logger: logger}

	registry := session.NewRegistry(session.RegistryDeps{
		Provider:              provider,
		Flags:                 repository.NewFlagStore(ctx, redis.ClientHandle(), logger),
		Credentials:           creds,
		Publisher:             publisher,
		TopicPrefix:           cfg.Events.TopicPrefix,
		LogoutOnAccountChange: cfg.Wallet.LogoutOnAccountChange,
		Logger:                logger,
	})
	defer registry.Close()
	metrics.TrackSessions(registry.Count)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	guard := auth.NewGuard(cfg.Guard.DenialDisplay)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, provider),
		Sessions:          handlers.NewSessionsHandler(registry, tokens, logger),
		Wallet:            handlers.NewWalletHandler(),
		Auth:              handlers.NewAuthHandler(),
		Views:             handlers.NewViewsHandler(guard),
		Fees:              handlers.NewFeesHandler(service.NewFeeService(deps)),
		Payroll:           handlers.NewPayrollHandler(service.NewPayrollService(deps)),
		Funds:             handlers.NewFundsHandler(service.NewFundService(deps)),
		Payments:          handlers.NewPaymentsHandler(service.NewPaymentService(deps)),
		Scholarships:      handlers.NewScholarshipsHandler(service.NewScholarshipService(deps)),
		Registry:          handlers.NewRegistryHandler(service.NewRegistryService(deps)),
		Transactions:      handlers.NewTransactionsHandler(service.NewTransactionService(callLog, cfg.Chain.RecentBlocks)),
		SessionMiddleware: session.NewMiddleware(tokens, registry),
		Guard:             guard,
		Metrics:           metrics,
	})

	reaperDone := worker.StartSessionReaper(ctx, cfg.Sessions, registry, logger)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	cancel()
	<-reaperDone
}

func bcryptCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
