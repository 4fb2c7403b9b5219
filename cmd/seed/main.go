package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/seed"
	"storefront/internal/store"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a catalog YAML file (defaults to the built-in catalog)")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	var catalog io.Reader = seed.DefaultCatalog()
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			logger.Fatalf("open catalog file: %v", err)
		}
		defer f.Close()
		catalog = f
	}

	client := store.New(cfg.StoreBaseURL, cfg.StoreAPIKey)

	count, err := seed.Apply(context.Background(), client, catalog)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seeded %d products into %s", count, cfg.StoreBaseURL)
}
