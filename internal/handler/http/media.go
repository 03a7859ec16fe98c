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

func (h *Handler) listMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := query.NewMediaParams(r.URL.Query(), access.FromContext(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.MediaService.List(ctx, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeList(w, list, params)
}

func (h *Handler) getMedia(w http.ResponseWriter, r *http.Request) {
	expand, err := parseExpand(r, query.Media)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.MediaService.Get(r.Context(), chi.URLParam(r, "id"), expand)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, item, nil, http.StatusOK)
}

func (h *Handler) createMedia(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSON[models.MediaInput](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.MediaService.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, item, nil, http.StatusCreated)
}

func (h *Handler) updateMedia(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSON[models.MediaInput](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.MediaService.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, item, nil, http.StatusOK)
}

func (h *Handler) deleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.services.MediaService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
