// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/app"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/service"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
	"github.com/repraze/repraze-apps-sub001/models"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is checked in order; the first match wins.
var errorResponses = []errorResponse{
	{errInvalidJSON, http.StatusBadRequest, app.MsgInvalidJSON},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgInvalidAuthorizationHeader},
	{ErrEmptyToken, http.StatusUnauthorized, app.MsgInvalidAuthorizationHeader},
	{access.ErrAuthenticationRequired, http.StatusForbidden, app.MsgAuthenticationRequired},
	{store.ErrNotFound, http.StatusNotFound, app.MsgNotFound},
	{store.ErrAlreadyExists, http.StatusConflict, app.MsgAlreadyExists},
}

func statusFromError(err error) int {
	if errors.Is(err, validators.ErrValidation) {
		return http.StatusBadRequest
	}
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp.status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status mapped from err. Internal faults are
// logged with detail and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var vErr *validators.ValidationError
	if errors.As(err, &vErr) {
		log.Debug().Err(err).Str("field", vErr.Field).Msg("request rejected")
		utils.WriteJSON(w, models.MessageResponse{Message: vErr.Message, Field: vErr.Field}, http.StatusBadRequest)
		return
	}

	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			log.Debug().Err(err).Int("status", resp.status).Msg("request rejected")
			utils.WriteMessage(w, resp.message, resp.status)
			return
		}
	}

	log.Err(err).Msg("unexpected error occurred")
	utils.WriteMessage(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
