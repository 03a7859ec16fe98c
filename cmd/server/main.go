// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/config"
	"github.com/repraze/repraze-apps-sub001/internal/crypto"
	"github.com/repraze/repraze-apps-sub001/internal/handler"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/server"
	"github.com/repraze/repraze-apps-sub001/internal/service"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/workers"
	"github.com/repraze/repraze-apps-sub001/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const poolDrainTimeout = 10 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("cms-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Str("level", cfg.App.LogLevel).Msg("invalid log level")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.DB.ConnectTimeout)
	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Err(err).Msg("error closing database")
		}
	}()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	pool := workers.NewPool(cfg.Workers.HashConcurrency)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), poolDrainTimeout)
		defer cancel()
		if err := pool.Close(ctx); err != nil {
			log.Err(err).Msg("error draining hash workers")
		}
	}()

	hasher, err := crypto.NewPasswordHasher(crypto.HashParams{
		KeyLength:       cfg.App.Scrypt.KeyLength,
		SaltLength:      cfg.App.Scrypt.SaltLength,
		Cost:            cfg.App.Scrypt.Cost,
		BlockSize:       cfg.App.Scrypt.BlockSize,
		Parallelization: cfg.App.Scrypt.Parallelization,
	}, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating password hasher")
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, hasher, cfg.App, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
