package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vayva/internal/audit"
	auditHandler "vayva/internal/audit/handler"
	auditStore "vayva/internal/audit/store"
	merchantStore "vayva/internal/merchant/store"
	"vayva/internal/platform/config"
	"vayva/internal/platform/httpserver"
	"vayva/internal/platform/logger"
	"vayva/internal/platform/middleware"
	"vayva/internal/platform/postgres"
	"vayva/internal/platform/redis"
	"vayva/internal/publish"
	publishHandler "vayva/internal/publish/handler"
	publishMetrics "vayva/internal/publish/metrics"
	"vayva/internal/readiness"
	readinessHandler "vayva/internal/readiness/handler"
	readinessMetrics "vayva/internal/readiness/metrics"
	"vayva/internal/remediation"
	remediationHandler "vayva/internal/remediation/handler"
	remediationMetrics "vayva/internal/remediation/metrics"
	remediationStore "vayva/internal/remediation/store"
	"vayva/pkg/platform/httputil"
)

// factStore is the full merchant fact surface; both the in-memory and the
// Postgres store satisfy it.
type factStore interface {
	readiness.FactStore
	remediation.FactStore
	publish.StoreStore
}

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage. Postgres when configured, in-memory otherwise.
	var (
		db       *sql.DB
		facts    factStore
		remedLog remediation.LogStore
		auditSt  audit.Store
	)
	if cfg.PostgresURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		facts = merchantStore.NewPostgres(db)
		remedLog = remediationStore.NewPostgres(db)
		auditSt = auditStore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		facts = merchantStore.NewMemory()
		remedLog = remediationStore.NewMemory()
		auditSt = auditStore.NewMemory()
		log.Info("using in-memory stores")
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Audit trail. The Kafka sink is optional; Postgres stays the store of
	// record either way.
	var sink audit.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Error("kafka sink setup failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit events mirrored to kafka", "topic", cfg.Kafka.Topic)
	}
	auditPublisher := audit.NewPublisher(auditSt, sink, log)

	// Readiness.
	var cache *readiness.ResultCache
	if redisClient != nil {
		cache = readiness.NewResultCache(redisClient.Client, cfg.ReadinessCacheTTL)
	}
	readinessService := readiness.NewService(facts,
		readiness.WithCache(cache),
		readiness.WithMetrics(readinessMetrics.New()),
		readiness.WithLogger(log),
	)

	// Remediation.
	var cooldown *remediation.Cooldown
	if redisClient != nil {
		cooldown = remediation.NewCooldown(redisClient.Client, cfg.RemediationCooldown)
	}
	remediationService := remediation.NewService(facts, remedLog,
		remediation.WithCooldown(cooldown),
		remediation.WithMetrics(remediationMetrics.New()),
		remediation.WithLogger(log),
	)
	// In Postgres mode each run commits its fixes and log entries atomically.
	var remediator remediationHandler.Service = remediationService
	if db != nil {
		remediator = newTxRemediator(db, remediationService)
	}

	// Publish gate.
	gate := publish.NewGate(facts, readinessService, auditPublisher,
		publish.WithMetrics(publishMetrics.New()),
		publish.WithLogger(log),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)

	// Merchant-facing routes require a bearer token.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.JWTSigningKey, log))
		readinessHandler.New(readinessService, log).Register(r)
		remediationHandler.New(remediator, readinessService, log).Register(r)
		publishHandler.New(gate, log).Register(r)
	})

	// Ops-console routes require the admin token.
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(cfg.AdminToken, log))
		publishHandler.New(gate, log).RegisterAdmin(r)
		auditHandler.New(auditPublisher, log).Register(r)
	})

	router.Get("/healthz", healthHandler(db, redisClient))
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("ops readiness service listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// healthHandler reports process liveness plus the state of each configured
// backing service.
func healthHandler(db *sql.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := map[string]string{"server": "ok"}

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				checks["postgres"] = "unavailable"
				status = http.StatusServiceUnavailable
			} else {
				checks["postgres"] = "ok"
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				checks["redis"] = "unavailable"
				status = http.StatusServiceUnavailable
			} else {
				checks["redis"] = "ok"
			}
		}

		httputil.WriteJSON(w, status, checks)
	}
}
