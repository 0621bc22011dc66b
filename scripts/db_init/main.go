package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/uplandimports/storefront/db"
	"github.com/uplandimports/storefront/internal/config"
	"github.com/uplandimports/storefront/internal/db"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	// apply migrations and load the product catalog seed
	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database %s initialized successfully.\n", cfg.Storage.DatabasePath)
}
