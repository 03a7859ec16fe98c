// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
)

// arrayConverter lets text[] arguments reach sqlmock untouched.
type arrayConverter struct{}

func (arrayConverter) ConvertValue(v any) (driver.Value, error) {
	if list, ok := v.([]string); ok {
		return list, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.ValueConverterOption(arrayConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return newDB(conn, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func postRow(rows *sqlmock.Rows, id, name string, tags string, publishDate any) *sqlmock.Rows {
	return rows.AddRow(
		id, name, "Title "+name, "summary", "content", "news", tags,
		true, true, false, publishDate, "{u1,u2}", nil,
		"u1", "u2", "", testTime, testTime,
	)
}

func userRow(rows *sqlmock.Rows, id, username string) *sqlmock.Rows {
	return rows.AddRow(id, username, "Display "+username, username+"@example.com", "salt:key", testTime, testTime)
}
