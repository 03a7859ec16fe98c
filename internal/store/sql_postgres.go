// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/repraze/repraze-apps-sub001/internal/config"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/migrations"
)

const (
	queryRetries       = 2
	queryRetryInterval = 50 * time.Millisecond
)

// DB is the process-wide PostgreSQL handle. It is constructed once at startup
// and closed on shutdown.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens the pool and waits, with exponential backoff, until
// the database answers a ping or cfg.ConnectTimeout elapses.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectTimeout
	attempt := 1
	err = backoff.Retry(func() error {
		if pingErr := conn.PingContext(ctx); pingErr != nil {
			log.Info().Str("func", "NewConnectPostgres").Int("attempt", attempt).Msg("waiting for the database")
			attempt++
			return pingErr
		}
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return newDB(conn, log), nil
}

func newDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.logger)
}

// Close releases every pooled connection.
func (db *DB) Close() error {
	db.logger.Info().Str("func", "*DB.Close").Msg("closing database pool")
	return db.DB.Close()
}

// retry runs op again when it fails with an error classified as
// [Retryable]. Other errors are returned at once.
func (db *DB) retry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(queryRetryInterval), queryRetries),
		ctx,
	)

	return backoff.Retry(func() error {
		err := op()
		if err != nil && db.errorClassificator.Classify(err) != Retryable {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}
