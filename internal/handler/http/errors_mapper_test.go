// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/service"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{validators.NewValidationError("query.limit", "must be at least 1"), http.StatusBadRequest},
		{fmt.Errorf("%w: unexpected EOF", errInvalidJSON), http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{ErrEmptyToken, http.StatusUnauthorized},
		{fmt.Errorf("%w: create posts", access.ErrAuthenticationRequired), http.StatusForbidden},
		{fmt.Errorf("error reading post p1: %w", store.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("error creating user: %w", store.ErrAlreadyExists), http.StatusConflict},
		{fmt.Errorf("%w: timeout", store.ErrExecutingQuery), http.StatusInternalServerError},
		{service.ErrTokenCreationFailed, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, httptest.NewRequest(http.MethodGet, "/posts", nil),
		fmt.Errorf("%w: pq: password authentication failed for user cms", store.ErrExecutingQuery))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rr.Body.String())
}
