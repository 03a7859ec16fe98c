// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := query.NewUserParams(r.URL.Query(), access.FromContext(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.UserService.List(ctx, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeList(w, list, params)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, user, nil, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSON[models.UserInput](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, user, nil, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSON[models.UserInput](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, user, nil, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	change, err := decodeJSON[models.PasswordChange](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.UserService.ChangePassword(r.Context(), chi.URLParam(r, "id"), change); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
