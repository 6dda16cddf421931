package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"credo/internal/api/handlers"
	mw "credo/internal/api/middleware"
	"credo/internal/config"
	"credo/internal/domain"
	"credo/internal/embedding"
	"credo/internal/search"
	"credo/internal/service"
	"credo/internal/sink"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router and request counters for the metrics endpoint.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires sinks, services, and handlers into a router. db may be nil;
// the audit sink then falls back to in-memory and postgres-backed search
// is unavailable.
func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Each session gets its own audit trail, mirrored to the log.
	newSink := func() domain.AuditSink {
		var trail domain.AuditSink
		if config.AuditSinkProvider() == "postgres" && db != nil {
			trail = sink.NewPostgres(db)
		} else {
			trail = sink.NewMemory()
		}
		return sink.NewLogged(trail, logger)
	}

	sessionSvc := service.NewSessionService(newSink, logger)
	sessionHandler := handlers.NewSessionHandler(sessionSvc)
	canonicalHandler := handlers.NewCanonicalHandler()

	// Evidence retrieval is optional; the session core never depends on it.
	var evidenceHandler *handlers.EvidenceHandler
	if provider := config.SearchProvider(); provider != "" {
		store, err := search.NewStore(provider, db)
		if err != nil {
			logger.Warn("evidence search disabled", zap.Error(err))
		} else {
			embedder, err := embedding.NewClient(config.EmbeddingProvider(), config.EmbeddingAPIKey())
			if err != nil {
				logger.Warn("evidence search disabled", zap.Error(err))
			} else {
				evidenceSvc := service.NewEvidenceService(store, embedder, logger)
				evidenceHandler = handlers.NewEvidenceHandler(evidenceSvc)
				logger.Info("evidence search enabled", zap.String("provider", provider))
			}
		}
	}

	r := chi.NewRouter()
	app := &App{Router: r, startTime: time.Now()}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sessions", sessionHandler.Run)
		r.Post("/canonical-id", canonicalHandler.Derive)

		if evidenceHandler != nil {
			r.Route("/evidence", func(r chi.Router) {
				r.Post("/", evidenceHandler.Index)
				r.Get("/search", evidenceHandler.Search)
			})
		}
	})

	return app
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		code := http.StatusOK

		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				status = map[string]string{"status": "degraded", "database": err.Error()}
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}

func (a *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"uptime_seconds": time.Since(a.startTime).Seconds(),
			"requests_total": a.requestCount.Load(),
			"errors_total":   a.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"heap_bytes":     mem.HeapAlloc,
		})
	}
}
