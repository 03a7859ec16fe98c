// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
)

// ── responseWriter ───────────────────────────────────────────────────────────

func TestResponseWriter(t *testing.T) {
	t.Run("first status wins", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError)

		assert.Equal(t, http.StatusCreated, w.status)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("write implies 200 and accumulates size", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.Write([]byte("hello "))
		w.Write([]byte("world"))

		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, 11, w.size)
		assert.Equal(t, "hello world", rr.Body.String())
		assert.Same(t, rr, w.Unwrap())
	})
}

// ── withLogging / withTraceID ────────────────────────────────────────────────

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, body: "OK", wantLevel: "info"},
		{name: "client error", status: http.StatusNotFound, body: "nope", wantLevel: "info"},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantLevel: "error"},
		{name: "no explicit status", status: 0, wantLevel: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(http.MethodGet, "/posts?limit=5", nil)
			h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), req)

			entries := logEntries(t, &buf)
			require.Len(t, entries, 1)
			entry := entries[0]

			wantStatus := tt.status
			if wantStatus == 0 {
				wantStatus = http.StatusOK
			}
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "/posts?limit=5", entry["uri"])
			assert.Equal(t, "GET", entry["method"])
			assert.EqualValues(t, wantStatus, entry["status"])
			assert.EqualValues(t, len(tt.body), entry["size"])
			assert.Contains(t, entry, "duration")
			assert.NotEmpty(t, entry["trace_id"])
		})
	}
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	handler := h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	seen := map[string]bool{}
	for range 20 {
		rr := record(handler, newRequest(http.MethodGet, "/health"))
		id := rr.Header().Get(traceIDHeader)
		assert.False(t, seen[id], "duplicate trace id %s", id)
		seen[id] = true
	}
}

// ── CheckHTTPMethod ──────────────────────────────────────────────────────────

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	router.Post("/auth/login/basic", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.MethodNotAllowed(CheckHTTPMethod)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodPost, "/health", http.StatusNotFound},
		{http.MethodDelete, "/health", http.StatusNotFound},
		{http.MethodPost, "/auth/login/basic", http.StatusAccepted},
		{http.MethodGet, "/auth/login/basic", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := record(router, newRequest(tt.method, tt.path))
			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusNotFound {
				assert.Equal(t, "Not found", message(t, rr).Message)
			}
		})
	}
}
