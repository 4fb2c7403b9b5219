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
	"storefront/internal/httpserver"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	"storefront/internal/store"
)

// cartLogger logs cart badge recounts so mutation traffic is visible in the
// server log without extra instrumentation.
type cartLogger struct {
	logger *log.Logger
}

func (c cartLogger) CartChanged(userID string, itemCount int) {
	c.logger.Printf("cart changed: user=%s items=%d", userID, itemCount)
}

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	client := store.New(cfg.StoreBaseURL, cfg.StoreAPIKey)

	cartService := cartsvc.New(client, logger)
	cartService.Subscribe(cartLogger{logger: logger})
	checkoutService := checkoutsvc.New(client, cartService, logger)
	catalogService := catalogsvc.New(client)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:     catalogService,
		Cart:        cartService,
		Checkout:    checkoutService,
		Store:       client,
		AuthSecret:  cfg.AuthSecret,
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (store %s)", cfg.HTTPAddr, cfg.StoreBaseURL)
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
