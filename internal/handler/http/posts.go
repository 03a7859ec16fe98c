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

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := query.NewPostParams(r.URL.Query(), access.FromContext(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.PostService.List(ctx, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeList(w, list, params)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	expand, err := parseExpand(r, query.Posts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.Get(r.Context(), chi.URLParam(r, "id"), expand)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, post, nil, http.StatusOK)
}

func (h *Handler) relatedPosts(w http.ResponseWriter, r *http.Request) {
	expand, err := parseExpand(r, query.Posts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.services.PostService.Related(r.Context(), chi.URLParam(r, "id"), expand)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, posts, nil, http.StatusOK)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSON[models.PostInput](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, post, nil, http.StatusCreated)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSON[models.PostInput](w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteData(w, post, nil, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PostService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
