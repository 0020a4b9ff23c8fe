package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"hrplus/internal/domain/analytics"
	"hrplus/internal/domain/appraisal"
	"hrplus/internal/domain/audit"
	"hrplus/internal/domain/auth"
	"hrplus/internal/platform/config"
	"hrplus/internal/platform/db"
	"hrplus/internal/platform/jobs"
	"hrplus/internal/platform/metrics"
	analyticshandler "hrplus/internal/transport/http/handlers/analytics"
	appraisalhandler "hrplus/internal/transport/http/handlers/appraisal"
	authhandler "hrplus/internal/transport/http/handlers/auth"
	reportshandler "hrplus/internal/transport/http/handlers/reports"
	"hrplus/internal/transport/http/api"
	"hrplus/internal/transport/http/middleware"
)

func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	decisions := audit.New(pool)
	engine := analytics.NewService(analytics.NewStore(pool), decisions, cfg.BatchConcurrency)
	appraisalSvc := appraisal.NewService(appraisal.NewStore(pool))
	authSvc := auth.NewService(auth.NewStore(pool))
	collector := metrics.New()

	jobRunner := jobs.New(pool, cfg, engine)
	jobRunner.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		loginHandler := authhandler.NewHandler(authSvc, cfg.JWTSecret)
		r.Post("/auth/login", loginHandler.HandleLogin)

		analyticshandler.NewHandler(engine, decisions, authSvc, collector).RegisterRoutes(r)
		appraisalhandler.NewHandler(appraisalSvc, authSvc).RegisterRoutes(r)
		reportshandler.NewHandler(engine, authSvc).RegisterRoutes(r)
	})

	slog.Info("analytics server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
