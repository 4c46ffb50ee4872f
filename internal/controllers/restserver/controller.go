// Package restserver exposes the analysis pipeline over HTTP: file upload,
// direct numeric analysis, health, and stored-analysis retrieval.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/somnolab/apneawatch/internal/analysis"
	"github.com/somnolab/apneawatch/internal/database"
	"github.com/somnolab/apneawatch/internal/log"
	"github.com/somnolab/apneawatch/pkg/config"
	"go.uber.org/zap"
)

// MaxUploadBytes caps the accepted payload size (10 MiB).
const MaxUploadBytes = 10 * 1024 * 1024

// Controller represents the REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	httpConfig     config.HTTPData
	Server         http.Server
	DB             *database.Client
	DBEnabled      bool
	AnalysisConfig analysis.Config
	// DefaultSensitivity applies when a request omits the sensitivity field.
	DefaultSensitivity float64
	// NewPolicy constructs the scoring policy for one analysis. Overridable
	// so tests can inject a deterministic policy.
	NewPolicy func() analysis.ScoringPolicy

	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:                ctx,
		wg:                 wg,
		httpConfig:         cfg.HTTP,
		AnalysisConfig:     analysis.DefaultConfig(),
		DefaultSensitivity: cfg.Analysis.DefaultSensitivity,
		NewPolicy:          func() analysis.ScoringPolicy { return analysis.NewRandomPolicy() },
		logger:             logger,
	}

	if ctrl.DefaultSensitivity == 0 {
		ctrl.DefaultSensitivity = 0.5
	}

	// If a listen address was not provided, listen on all interfaces
	if ctrl.httpConfig.ListenAddr == "" {
		logger.Info("http.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.httpConfig.ListenAddr = "0.0.0.0"
	}
	if ctrl.httpConfig.Port == 0 {
		logger.Info("http.port not provided; defaulting to 8080")
		ctrl.httpConfig.Port = 8080
	}

	// If a database was configured, set up the analysis history store so the
	// handlers can persist and retrieve results
	if cfg.Storage.TimescaleDB != nil && cfg.Storage.TimescaleDB.ConnectionString != "" {
		db, err := database.NewClient(cfg.Storage.TimescaleDB.ConnectionString, logger)
		if err != nil {
			return nil, fmt.Errorf("REST server could not connect to database: %w", err)
		}
		ctrl.DB = db
		ctrl.DBEnabled = true
	}

	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.httpConfig.ListenAddr, ctrl.httpConfig.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.httpConfig.TLSCertPath != "" && c.httpConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.httpConfig.TLSCertPath, c.httpConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLoggingMiddleware(c.logger))

	router.HandleFunc("/api/upload", c.handlers.Upload).Methods(http.MethodPost)
	router.HandleFunc("/api/analyze", c.handlers.Analyze).Methods(http.MethodPost)
	router.HandleFunc("/api/health", c.handlers.Health).Methods(http.MethodGet)
	router.HandleFunc("/api/analyses", c.handlers.RecentAnalyses).Methods(http.MethodGet)
	router.HandleFunc("/api/chart/{id}", c.handlers.Chart).Methods(http.MethodGet)

	return router
}

// statusRecorder captures the response code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLoggingMiddleware logs method, path, status, and duration
func requestLoggingMiddleware(logger *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Infow("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
			)
		})
	}
}
