package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/voltshop/storefront-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/voltshop/storefront-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/voltshop/storefront-api/internal/domains/catalog/application"
	catalogports "github.com/voltshop/storefront-api/internal/domains/catalog/ports"
	ordercatalog "github.com/voltshop/storefront-api/internal/domains/orders/adapters/catalog"
	ordermemory "github.com/voltshop/storefront-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/voltshop/storefront-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/voltshop/storefront-api/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/voltshop/storefront-api/internal/domains/orders/application"
	orderports "github.com/voltshop/storefront-api/internal/domains/orders/ports"
	orderactivities "github.com/voltshop/storefront-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/voltshop/storefront-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/voltshop/storefront-api/internal/platform/observability"
	platformpostgres "github.com/voltshop/storefront-api/internal/platform/postgres"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, catalogRepo, cleanupRepo := buildRepositories(ctx, logger)
	defer cleanupRepo()
	coreOrderService := orderapp.NewService(
		orderRepo,
		ordercatalog.NewGateway(catalogapp.NewService(catalogRepo)),
		orderapp.WithLogger(logger),
	)
	orderService := orderobs.New(
		coreOrderService,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildRepositories wires the order and catalog stores against the same
// backend so the placement activity's stock decrements stay consistent.
func buildRepositories(ctx context.Context, logger *slog.Logger) (orderports.Repository, catalogports.Repository, func()) {
	dsn := os.Getenv("POSTGRES_DSN")
	if strings.TrimSpace(dsn) == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryRepositories()
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres (falling back to memory)", slog.String("error", err.Error()))
		return memoryRepositories()
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection (falling back to memory)", slog.String("error", err.Error()))
		return memoryRepositories()
	}
	logger.Info("worker repositories configured with postgres")
	return orderpostgres.NewRepository(db), catalogpostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func memoryRepositories() (orderports.Repository, catalogports.Repository, func()) {
	catalogRepo := catalogmemory.NewRepository()
	return ordermemory.NewRepository(catalogRepo), catalogRepo, func() {}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
