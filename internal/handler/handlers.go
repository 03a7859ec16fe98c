// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/repraze/repraze-apps-sub001/internal/config"
	"github.com/repraze/repraze-apps-sub001/internal/handler/http"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, logger)}, nil
}
