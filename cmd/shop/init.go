package main

import (
	"context"
	"fmt"

	"shop_pos/config"
	"shop_pos/internal/credentials"
	"shop_pos/internal/datahandler"
	"shop_pos/internal/global"
	"shop_pos/internal/logger"
	"shop_pos/internal/metrics"
	"shop_pos/internal/store"
)

// app holds everything the launcher owns and releases at exit
type app struct {
	cfg     *config.Configuration
	store   *store.MongoStore
	handler *datahandler.Handler
}

// initLogger configures logging from the environment
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// initApp loads the configuration, connects the store and builds the handler.
// An unreachable store is not fatal: the application runs on the local files.
func initApp(ctx context.Context) (*app, error) {
	log := logger.GetAppLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	log.WithField("database", cfg.MongoDB_DBName).Info("Configuration loaded")

	global.InitValidator()

	s := store.NewMongoStore(cfg)
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	err = s.Connect(connectCtx)
	cancel()
	if err != nil {
		log.WithError(err).Warn("Database connection not available, running on local files")
	}

	return &app{
		cfg:     cfg,
		store:   s,
		handler: datahandler.New(s, datahandler.OptionsFromConfig(cfg)),
	}, nil
}

// checkCredentials reports whether the credentials file is set up
func (a *app) checkCredentials() {
	log := logger.GetAppLogger().WithField(logger.FieldPath, a.cfg.CredentialsFile)
	creds, err := credentials.Load(a.cfg.CredentialsFile)
	switch {
	case err != nil:
		log.WithError(err).Warn("Failed to read credentials file")
	case creds == nil:
		log.Info("No credentials file yet")
	default:
		log.WithField("username", creds.Username).Info("Credentials file found")
	}
}

// close writes the metrics textfile and releases the store
func (a *app) close(ctx context.Context) {
	if a.cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			logger.GetAppLogger().WithError(err).WithField(logger.FieldPath, a.cfg.MetricsTextfile).
				Warn("Failed to write metrics textfile")
		}
	}
	if err := a.store.Close(ctx); err != nil {
		logger.GetAppLogger().WithError(err).Error("Failed to close store")
	}
}
