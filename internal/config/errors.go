// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidAppConfigs indicates missing token settings or inconsistent
	// login delay bounds.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidScryptConfigs indicates unusable password hashing parameters.
	ErrInvalidScryptConfigs = errors.New("invalid scrypt configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates an empty listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidClientConfigs indicates an unusable server URL or timeout.
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
)
