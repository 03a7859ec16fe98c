// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_Fields verifies role, timestamp and caller fields.
func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "test-role")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "hello", entry["message"])
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(t, SetLevel("loud"))
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info().Msg("dropped") })
}

// TestGetChildLogger_Independent verifies that child fields do not leak into
// the parent logger.
func TestGetChildLogger_Independent(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "parent")

	child := parent.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc")
	})

	parent.Info().Msg("parent")
	entry := decodeEntry(t, &buf)
	assert.NotContains(t, entry, "trace_id")

	buf.Reset()
	child.Info().Msg("child")
	entry = decodeEntry(t, &buf)
	assert.Equal(t, "abc", entry["trace_id"])
}

// TestFromContext_ReturnsAttachedLogger verifies the round trip through
// zerolog's context helpers.
func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "ctx")
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("via ctx")
	assert.Equal(t, "ctx", decodeEntry(t, &buf)["role"])

	buf.Reset()
	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("via request")
	assert.Equal(t, "ctx", decodeEntry(t, &buf)["role"])
}
