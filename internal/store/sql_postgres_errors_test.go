// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: Retryable},
		{name: "serialization failure", err: pgError(pgerrcode.SerializationFailure), want: Retryable},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected), want: Retryable},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), want: Retryable},
		{name: "wrapped retryable", err: fmt.Errorf("query: %w", pgError(pgerrcode.DeadlockDetected)), want: Retryable},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: NonRetryable},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError), want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", pgError(pgerrcode.UniqueViolation))))
	assert.False(t, isUniqueViolation(pgError(pgerrcode.ForeignKeyViolation)))
	assert.False(t, isUniqueViolation(nil))
	assert.Equal(t, "", postgresError(errors.New("boom")))
}

func TestDB_Retry(t *testing.T) {
	db, _ := newTestDB(t)

	t.Run("gives up on permanent errors", func(t *testing.T) {
		calls := 0
		err := db.retry(context.Background(), func() error {
			calls++
			return pgError(pgerrcode.UniqueViolation)
		})
		assert.True(t, isUniqueViolation(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops after the retry budget", func(t *testing.T) {
		calls := 0
		err := db.retry(context.Background(), func() error {
			calls++
			return pgError(pgerrcode.ConnectionFailure)
		})
		assert.Error(t, err)
		assert.Equal(t, queryRetries+1, calls)
	})
}
