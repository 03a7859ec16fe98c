// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
)

//go:embed *.sql
var embedMigrations embed.FS

var errNilDB = errors.New("db is nil")

// Migrate applies every pending embedded migration to db.
func Migrate(db *sql.DB, log *logger.Logger) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}
	if log == nil {
		log = logger.Nop()
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{log: log})

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info().Str("func", "goose").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf only logs. goose returns the error to Migrate as well.
func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error().Str("func", "goose").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
