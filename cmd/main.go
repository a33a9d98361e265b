package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/packsmith/internal/services"
	"github.com/desertthunder/packsmith/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	catalog := services.NewCatalogService(config.Catalog)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Logger:  logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "packsmith",
		Usage:    "Author custom song packs and curate album series",
		Version:  "0.5.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
