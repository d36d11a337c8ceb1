// Package server implements the HTTP API that exposes classical and
// corrected positions.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/smahajan/grahas/internal/log"
	"github.com/smahajan/grahas/pkg/coeffs"
	"github.com/smahajan/grahas/pkg/residual"
	"github.com/smahajan/grahas/pkg/siddhanta"
)

// Config holds the HTTP server settings.
type Config struct {
	// ListenAddr is the host:port to bind. Defaults to ":8080".
	ListenAddr string
	// CoeffsProvider supplies the residual coefficient table. Nil disables
	// the corrected modes; classical positions stay available.
	CoeffsProvider coeffs.Provider
}

// Controller owns the HTTP server and the engines behind it.
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	Server   http.Server
	engine   *siddhanta.Engine
	table    residual.Table
	tableRun string
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController builds a controller around an engine. The coefficient table
// is loaded once at startup; a server restart picks up a new fit run.
func NewController(ctx context.Context, wg *sync.WaitGroup, engine *siddhanta.Engine, cfg Config, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:    ctx,
		wg:     wg,
		engine: engine,
		logger: logger,
	}

	if cfg.ListenAddr == "" {
		logger.Info("listen address not provided; defaulting to :8080")
		cfg.ListenAddr = ":8080"
	}

	if cfg.CoeffsProvider != nil {
		data, err := cfg.CoeffsProvider.Load()
		if err != nil {
			return nil, fmt.Errorf("error loading coefficient table: %v", err)
		}
		ctrl.table = data.Bodies
		ctrl.tableRun = data.RunID
		logger.Infof("loaded coefficient table from run %s (%d bodies)", data.RunID, len(data.Bodies))
	} else {
		logger.Info("no coefficient source configured; corrected modes disabled")
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = cfg.ListenAddr
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts serving and arranges shutdown on context cancel.
func (c *Controller) StartController() error {
	log.Info("Starting positions API server...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("positions API server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the positions API server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(c.requestLogMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/positions", c.handlers.GetPositions).Methods(http.MethodGet)
	api.HandleFunc("/bodies", c.handlers.GetBodies).Methods(http.MethodGet)
	api.HandleFunc("/health", c.handlers.GetHealth).Methods(http.MethodGet)

	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (c *Controller) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		c.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}
