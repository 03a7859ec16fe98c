// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the content
// server. It is populated by merging values from environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, password hashing and login settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds the limits of the key-derivation worker pool.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security
// and token lifecycle.
type App struct {
	// TokenSignKey is the secret key used to sign and verify bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token and
	// checked on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a token stays valid. Zero disables expiry.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// LoginDelayMin and LoginDelayMax bound the randomized delay imposed on
	// every login attempt.
	// Env: APP_LOGIN_DELAY_MIN, APP_LOGIN_DELAY_MAX
	LoginDelayMin time.Duration `env:"LOGIN_DELAY_MIN"`
	LoginDelayMax time.Duration `env:"LOGIN_DELAY_MAX"`

	// Scrypt holds the password hashing parameters.
	Scrypt Scrypt `envPrefix:"SCRYPT_"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimum zerolog level emitted (e.g. "info", "debug").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Scrypt holds the memory-hard key derivation parameters used for passwords.
// Changing them invalidates every stored credential.
type Scrypt struct {
	KeyLength       int `env:"KEY_LENGTH"`
	SaltLength      int `env:"SALT_LENGTH"`
	Cost            int `env:"COST"`
	BlockSize       int `env:"BLOCK_SIZE"`
	Parallelization int `env:"PARALLELIZATION"`
}

// Storage groups the configuration of the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the PostgreSQL backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns and MaxIdleConns size the process-wide connection pool.
	// Env: STORAGE_DB_MAX_OPEN_CONNS, STORAGE_DB_MAX_IDLE_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
	MaxIdleConns int `env:"MAX_IDLE_CONNS"`

	// ConnectTimeout bounds how long startup waits for the database to
	// accept connections.
	// Env: STORAGE_DB_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds reading a request and writing its response.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds the graceful shutdown of the server.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for the key-derivation worker pool.
type Workers struct {
	// HashConcurrency is the number of password hashes computed at once.
	// Env: WORKERS_HASH_CONCURRENCY
	HashConcurrency int `env:"HASH_CONCURRENCY"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
