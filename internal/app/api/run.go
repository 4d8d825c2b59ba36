package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	accountmemory "github.com/voltshop/storefront-api/internal/domains/accounts/adapters/memory"
	accountpostgres "github.com/voltshop/storefront-api/internal/domains/accounts/adapters/persistence/postgres"
	accounttoken "github.com/voltshop/storefront-api/internal/domains/accounts/adapters/token"
	accountapp "github.com/voltshop/storefront-api/internal/domains/accounts/application"
	accountports "github.com/voltshop/storefront-api/internal/domains/accounts/ports"
	catalogmemory "github.com/voltshop/storefront-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/voltshop/storefront-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/voltshop/storefront-api/internal/domains/catalog/application"
	catalogports "github.com/voltshop/storefront-api/internal/domains/catalog/ports"
	ordercatalog "github.com/voltshop/storefront-api/internal/domains/orders/adapters/catalog"
	ordermemory "github.com/voltshop/storefront-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/voltshop/storefront-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/voltshop/storefront-api/internal/domains/orders/adapters/persistence/postgres"
	orderworkflows "github.com/voltshop/storefront-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/voltshop/storefront-api/internal/domains/orders/application"
	orderports "github.com/voltshop/storefront-api/internal/domains/orders/ports"
	reportingaccounts "github.com/voltshop/storefront-api/internal/domains/reporting/adapters/accounts"
	reportingapp "github.com/voltshop/storefront-api/internal/domains/reporting/application"
	"github.com/voltshop/storefront-api/internal/platform/migrations"
	platformobservability "github.com/voltshop/storefront-api/internal/platform/observability"
	platformpostgres "github.com/voltshop/storefront-api/internal/platform/postgres"
	"github.com/voltshop/storefront-api/internal/transport/rest"
)

// Run boots the storefront HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	tokens := accounttoken.NewJWTIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	accountService := accountapp.NewService(repos.accounts, tokens)
	catalogService := catalogapp.NewService(repos.catalog)

	coreOrderService := orderapp.NewService(
		repos.orders,
		ordercatalog.NewGateway(catalogService),
		orderapp.WithLogger(logger),
	)
	orderService := orderobs.New(
		coreOrderService,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var placement orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		placement = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	reportingService := reportingapp.NewService(repos.orders, reportingaccounts.NewDirectory(accountService))

	responder := rest.NewResponder(cfg.Environment)
	router := rest.NewRouter(rest.Handlers{
		Accounts:  rest.NewAccountsAPI(accountService, responder),
		Products:  rest.NewProductsAPI(catalogService, responder),
		Orders:    rest.NewOrdersAPI(orderService, placement, accountService, responder),
		Dashboard: rest.NewDashboardAPI(reportingService, responder),
		Auth:      rest.NewAuthMiddleware(tokens, accountService, responder),
	}, otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr), slog.String("environment", cfg.Environment))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	accounts accountports.Repository
	catalog  catalogports.Repository
	orders   orderports.Repository
}

// buildRepositories wires the Postgres adapters when a DSN is configured and
// falls back to the in-memory set otherwise. The catalog and orders adapters
// must share a backend so stock decrements stay atomic with order writes.
func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryRepositories(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		accounts: accountpostgres.NewRepository(db),
		catalog:  catalogpostgres.NewRepository(db),
		orders:   orderpostgres.NewRepository(db),
	}, func() { _ = sqlDB.Close() }
}

func memoryRepositories() repositories {
	catalogRepo := catalogmemory.NewRepository()
	return repositories{
		accounts: accountmemory.NewRepository(),
		catalog:  catalogRepo,
		orders:   ordermemory.NewRepository(catalogRepo),
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
