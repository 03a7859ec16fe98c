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

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := query.NewPageParams(r.URL.Query(), access.FromContext(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.PageService.List(ctx, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeList(w, list, params)
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	expand, err := parseExpand(r, query.Pages)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.PageService.Get(r.Context(), chi.URLParam(r, "id"), expand)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, page, nil, http.StatusOK)
}

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSON[models.PageInput](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.PageService.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, page, nil, http.StatusCreated)
}

func (h *Handler) updatePage(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSON[models.PageInput](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.PageService.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, page, nil, http.StatusOK)
}

func (h *Handler) deletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PageService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
