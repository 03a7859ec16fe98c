// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the request decoding layer. Callers can match against
// them with [errors.Is].
var (
	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the bearer scheme is present but the
	// token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// errInvalidJSON is returned when a request body cannot be decoded.
	errInvalidJSON = errors.New("invalid JSON body")
)
