// Package app wires the positions API server together and manages its
// lifecycle.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/smahajan/grahas/internal/log"
	"github.com/smahajan/grahas/internal/server"
	"github.com/smahajan/grahas/pkg/siddhanta"
)

// App represents the main application
type App struct {
	engine    *siddhanta.Engine
	serverCfg server.Config
	logger    *zap.SugaredLogger
}

// New creates a new application instance
func New(engine *siddhanta.Engine, serverCfg server.Config, logger *zap.SugaredLogger) *App {
	return &App{
		engine:    engine,
		serverCfg: serverCfg,
		logger:    logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl, err := server.NewController(ctx, &wg, a.engine, a.serverCfg, a.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
