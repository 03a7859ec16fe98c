// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultClientServerURL      = "http://localhost:8080"
	defaultClientRequestTimeout = 15 * time.Second
)

// ClientAdapter holds network settings used by the API client.
type ClientAdapter struct {
	// ServerURL is the base URL of the CMS server.
	// Env: CMS_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout bounds every outbound request.
	// Env: CMS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the configuration of the command-line client. It is read
// from the environment only and is independent of [StructuredConfig], which
// requires server secrets the client never has.
type ClientConfig struct {
	Adapter ClientAdapter `envPrefix:"CMS_"`

	// Token is a bearer token reused across invocations.
	// Env: CMS_TOKEN
	Token string `env:"CMS_TOKEN"`
}

// GetClientConfig reads, defaults and validates the client configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting client env configs: %w", err)
	}

	cfg.applyDefaults()

	return cfg, cfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	setDefault(&cfg.Adapter.ServerURL, defaultClientServerURL)
	setDefault(&cfg.Adapter.RequestTimeout, defaultClientRequestTimeout)
	cfg.Token = strings.TrimSpace(cfg.Token)
}

func (cfg *ClientConfig) validate() error {
	u, err := url.Parse(cfg.Adapter.ServerURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClientConfigs, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server url must include scheme and host", ErrInvalidClientConfigs)
	}
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidClientConfigs)
	}

	return nil
}
