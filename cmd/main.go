package main

import (
	"fmt"
	"os"

	"github.com/unionprice/union-price-api/internal/server"
	"github.com/unionprice/union-price-api/pkg/config"
	"github.com/unionprice/union-price-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	defer log.Sync()
	zap.ReplaceGlobals(log.Desugar())

	// Service initialization
	log.Infow("Initializing union price service...", "env", cfg.Env)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Errorw("server failed to initialize", "error", err)
		os.Exit(1)
	}
	if err := srv.Run(); err != nil {
		log.Errorw("server failed to run", "error", err)
		os.Exit(1)
	}
}
