package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"video-share/cmd/config"
	"video-share/pkg/app"
	"video-share/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Error loading configuration: %v", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("Error configuring logger: %v", err)
	}
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.Wire(cfg, log, nil)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()
	log.WithField("driver", cfg.Database.Driver).Info("Database ready")

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: application.Handler,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(server, sigChan, cfg.Server.ShutdownTimeout, log); err != nil {
		log.WithError(err).Error("Server error")
		return
	}
	log.Info("Shutdown complete")
}

// serve runs server until it fails or a signal arrives on stop, then shuts it
// down within timeout. It returns instead of exiting so deferred cleanup runs.
func serve(server *http.Server, stop <-chan os.Signal, timeout time.Duration, log logrus.FieldLogger) error {
	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-stop:
	}

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.Shutdown(ctx)
}
