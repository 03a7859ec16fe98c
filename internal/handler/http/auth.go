// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/models"
)

func (h *Handler) loginBasic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	credentials, err := decodeJSON[models.Credentials](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, models.ClaimFor(user))
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", user.ID).Msg("user successfully logged in")

	summary := user.Summary()
	utils.WriteData(w, tokenResponse(token, &summary), nil, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claim, _ := access.FromContext(r.Context()).Claim()
	utils.WriteData(w, claim, nil, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claim, _ := access.FromContext(ctx).Claim()
	token, err := h.services.AuthService.CreateToken(ctx, claim)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, tokenResponse(token, nil), nil, http.StatusOK)
}

func tokenResponse(token models.Token, user *models.UserSummary) models.LoginResponse {
	resp := models.LoginResponse{Token: token.SignedString, User: user}
	if !token.ExpiresAt.IsZero() {
		resp.ExpiresAt = token.ExpiresAt
	}
	return resp
}
