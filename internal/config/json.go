// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case JSON keys
// and string durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		LoginDelayMin Duration `json:"login_delay_min"`
		LoginDelayMax Duration `json:"login_delay_max"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
		Scrypt        struct {
			KeyLength       int `json:"key_length"`
			SaltLength      int `json:"salt_length"`
			Cost            int `json:"cost"`
			BlockSize       int `json:"block_size"`
			Parallelization int `json:"parallelization"`
		} `json:"scrypt"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN            string   `json:"dsn"`
			MaxOpenConns   int      `json:"max_open_conns"`
			MaxIdleConns   int      `json:"max_idle_conns"`
			ConnectTimeout Duration `json:"connect_timeout"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		HashConcurrency int `json:"hash_concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			LoginDelayMin: time.Duration(jsonCfg.App.LoginDelayMin),
			LoginDelayMax: time.Duration(jsonCfg.App.LoginDelayMax),
			Version:       jsonCfg.App.Version,
			LogLevel:      jsonCfg.App.LogLevel,
			Scrypt: Scrypt{
				KeyLength:       jsonCfg.App.Scrypt.KeyLength,
				SaltLength:      jsonCfg.App.Scrypt.SaltLength,
				Cost:            jsonCfg.App.Scrypt.Cost,
				BlockSize:       jsonCfg.App.Scrypt.BlockSize,
				Parallelization: jsonCfg.App.Scrypt.Parallelization,
			},
		},
		Storage: Storage{
			DB: DB{
				DSN:            jsonCfg.Storage.DB.DSN,
				MaxOpenConns:   jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns:   jsonCfg.Storage.DB.MaxIdleConns,
				ConnectTimeout: time.Duration(jsonCfg.Storage.DB.ConnectTimeout),
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			HashConcurrency: jsonCfg.Workers.HashConcurrency,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
