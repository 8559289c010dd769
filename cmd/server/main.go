package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"filesfeed/internal/auth"
	"filesfeed/internal/catalog"
	"filesfeed/internal/config"
	"filesfeed/internal/domain/repositories"
	"filesfeed/internal/handler"
	"filesfeed/internal/metrics"
	"filesfeed/internal/middleware"
	"filesfeed/internal/render"
	"filesfeed/internal/repository/postgres"
	"filesfeed/internal/repository/resilient"
	"filesfeed/internal/repository/sqlite"
	"filesfeed/internal/repository/supabase"
	boardsvc "filesfeed/internal/service/board"
	feedsvc "filesfeed/internal/service/feed"
	progresssvc "filesfeed/internal/service/progress"
	"filesfeed/internal/service/state"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"record_backend", cfg.RecordBackend,
		"state_backend", cfg.StateBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector("filesfeed")
	healthChecks := map[string]handler.Pinger{}

	// Postgres pool, shared by whichever backends need it
	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		pool, err = postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		healthChecks["database"] = pool
		logger.Info("database connected",
			"max_conns", postgres.MaxConns,
			"min_conns", postgres.MinConns,
		)
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	// Record backend, behind a circuit breaker
	var backend repositories.RecordRepository
	switch cfg.RecordBackend {
	case config.BackendSupabase:
		backend, err = supabase.NewRecordRepository(cfg.SupabaseURL, cfg.SupabaseKey, tables.Posts, logger)
		if err != nil {
			log.Fatalf("Failed to create supabase client: %v", err)
		}
	default:
		backend = postgres.NewRecordRepository(repoConfig)
	}
	records := resilient.NewRecordRepository(backend, resilient.BreakerConfig{
		Name:         "records",
		MaxRequests:  cfg.BreakerMaxRequests,
		Interval:     cfg.BreakerInterval,
		Timeout:      cfg.BreakerTimeout,
		MinRequests:  cfg.BreakerMinRequests,
		FailureRatio: cfg.BreakerFailRatio,
	}, collector, logger)

	// Persisted owner state
	var (
		stateStore repositories.StateStore
		txManager  repositories.TransactionManager
	)
	switch cfg.StateBackend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.StateSQLitePath, logger)
		if err != nil {
			log.Fatalf("Failed to open state database: %v", err)
		}
		defer store.Close()
		stateStore, txManager = store, store
		healthChecks["state"] = store
	case config.BackendMemory:
		store := state.NewMemoryStore()
		stateStore, txManager = store, store
		logger.Warn("state backend is in-memory: boards and progress are lost on restart")
	default:
		stateStore = postgres.NewStateStore(repoConfig)
		txManager = postgres.NewTransactionManager(pool, logger)
	}

	// Owner identity
	var verifier auth.JWTVerifier
	if cfg.AuthEnabled() {
		v, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer v.Close()
		verifier = v
	} else {
		logger.Warn("auth disabled: owner taken from " + middleware.OwnerHeader + " header")
	}

	registry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Services
	feedService := feedsvc.NewFeedService(records, render.NewRenderer(), logger)
	boardService := boardsvc.NewBoardService(stateStore, txManager, records, collector, logger)
	progressService := progresssvc.NewProgressService(stateStore, txManager, feedService, collector, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, &handler.Handlers{
		Feed:     handler.NewFeedHandler(feedService, logger),
		Board:    handler.NewBoardHandler(boardService, logger),
		Progress: handler.NewProgressHandler(progressService, logger),
		Catalog:  handler.NewCatalogHandler(registry, logger),
		Health:   handler.NewHealthHandler(healthChecks, logger),
		Metrics:  collector.Handler(),
	})

	// Order: CORS → Auth → Metrics → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.Metrics(collector)(h)
	h = middleware.AuthMiddleware(verifier, logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.OwnerHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
