// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"runtime"
	"time"
)

const (
	defaultHTTPAddress     = ":8080"
	defaultRequestTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultTokenIssuer     = "repraze"
	defaultLogLevel        = "info"
	defaultTokenDuration   = 24 * time.Hour
	defaultLoginDelayMin   = 250 * time.Millisecond
	defaultLoginDelayMax   = 750 * time.Millisecond
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 4
	defaultConnectTimeout  = 30 * time.Second

	defaultScryptKeyLength       = 64
	defaultScryptSaltLength      = 16
	defaultScryptCost            = 1 << 14
	defaultScryptBlockSize       = 8
	defaultScryptParallelization = 1
)

// applyDefaults fills every unset value with its default.
func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.Server.HTTPAddress, defaultHTTPAddress)
	setDefault(&cfg.Server.RequestTimeout, defaultRequestTimeout)
	setDefault(&cfg.Server.ShutdownTimeout, defaultShutdownTimeout)

	setDefault(&cfg.App.TokenIssuer, defaultTokenIssuer)
	setDefault(&cfg.App.LogLevel, defaultLogLevel)
	setDefault(&cfg.App.TokenDuration, defaultTokenDuration)
	setDefault(&cfg.App.LoginDelayMin, defaultLoginDelayMin)
	setDefault(&cfg.App.LoginDelayMax, defaultLoginDelayMax)

	setDefault(&cfg.App.Scrypt.KeyLength, defaultScryptKeyLength)
	setDefault(&cfg.App.Scrypt.SaltLength, defaultScryptSaltLength)
	setDefault(&cfg.App.Scrypt.Cost, defaultScryptCost)
	setDefault(&cfg.App.Scrypt.BlockSize, defaultScryptBlockSize)
	setDefault(&cfg.App.Scrypt.Parallelization, defaultScryptParallelization)

	setDefault(&cfg.Storage.DB.MaxOpenConns, defaultMaxOpenConns)
	setDefault(&cfg.Storage.DB.MaxIdleConns, defaultMaxIdleConns)
	setDefault(&cfg.Storage.DB.ConnectTimeout, defaultConnectTimeout)

	setDefault(&cfg.Workers.HashConcurrency, runtime.NumCPU())
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// validate checks that the merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}

	if cfg.App.LoginDelayMin > cfg.App.LoginDelayMax {
		return fmt.Errorf("%w: login delay min is greater than max", ErrInvalidAppConfigs)
	}

	s := cfg.App.Scrypt
	if s.Cost < 2 || s.Cost&(s.Cost-1) != 0 {
		return fmt.Errorf("%w: cost must be a power of two", ErrInvalidScryptConfigs)
	}
	if s.KeyLength <= 0 || s.SaltLength <= 0 || s.BlockSize <= 0 || s.Parallelization <= 0 {
		return fmt.Errorf("%w: lengths and factors must be positive", ErrInvalidScryptConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
