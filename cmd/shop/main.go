package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop_pos/internal/logger"
)

func main() {
	initLogger()
	defer logger.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.GetAppLogger()
	a, err := initApp(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to start")
		logger.Shutdown()
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.close(closeCtx)
	}()

	a.checkCredentials()

	// bring the JSON cache and the workbooks in line with the best available source
	failed := a.handler.SyncAll(ctx)
	for kind, err := range failed {
		log.WithField(logger.FieldKind, string(kind)).WithError(err).Error("Failed to synchronize collection")
	}
	log.WithField("failed", len(failed)).Info("Startup synchronization finished")
}
