package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"lessence/storefront"
	"lessence/utils"
)

// main is a thin adapter around storefront.Run
func main() {
	logger, err := utils.NewLogger(os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := storefront.Run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if !errors.Is(err, storefront.ErrUsage) {
			logger.Error("storefront command failed", zap.Error(err))
		}
		logger.Sync()
		stop()
		os.Exit(1)
	}
}
