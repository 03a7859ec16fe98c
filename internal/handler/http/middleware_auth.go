// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
)

const accessTokenParam = "access_token"

// authenticate resolves the caller of every request and stores it in the
// request context with [access.WithCaller].
//
// The token is read from the "Authorization: Bearer <token>" header, or from
// the access_token query parameter when the header is absent. A request
// without a token proceeds as [access.Anonymous]. A malformed header or a
// token rejected by [service.AuthService.ParseToken] is answered with 401.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenString, err := getTokenFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if tokenString == "" {
			next.ServeHTTP(w, r.WithContext(access.WithCaller(ctx, access.Anonymous())))
			return
		}

		claim, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		l := logger.FromContext(ctx).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("subject_id", claim.SubjectID)
		})
		ctx = l.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(access.WithCaller(ctx, access.Authenticated(claim))))
	})
}

// requireAuth answers 403 to anonymous callers. It must run after authenticate.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := access.FromContext(r.Context()).Require(); err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getTokenFromRequest returns "" without error when no token was supplied.
func getTokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return getTokenFromAuthHeader(authHeader)
	}
	return r.URL.Query().Get(accessTokenParam), nil
}

// getTokenFromAuthHeader extracts the token of a "Bearer <token>" header
// value. The scheme is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
