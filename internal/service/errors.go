// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown username and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("username or password incorrect")

	// ErrTokenIsExpiredOrInvalid is returned for any bearer token that fails
	// verification.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed is an internal fault raised when a token cannot be
	// signed, for instance for an account without an identifier.
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
