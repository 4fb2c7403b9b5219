package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/devstore"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[devstore] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := devstore.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := devstore.Migrate(ctx, pool); err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	srv := devstore.New(cfg.DevstoreAddr, logger, pool, devstore.Options{
		APIKey:     cfg.StoreAPIKey,
		AuthSecret: cfg.AuthSecret,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting record store on %s", cfg.DevstoreAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
