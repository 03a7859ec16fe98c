// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/health", health)
	router.Get("/version", h.getServerVersion)
	// a stale bearer token must not block signing in again
	router.Post("/auth/login/basic", h.loginBasic)

	router.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.With(requireAuth).Get("/auth/me", h.me)
		r.With(requireAuth).Post("/auth/token/refresh", h.refreshToken)

		// posts and pages are readable anonymously, narrowed by the query layer
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.With(requireAuth).Post("/", h.createPost)
			r.Get("/{id}", h.getPost)
			r.Get("/{id}/related", h.relatedPosts)
			r.With(requireAuth).Patch("/{id}", h.updatePost)
			r.With(requireAuth).Delete("/{id}", h.deletePost)
		})

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", h.listPages)
			r.With(requireAuth).Post("/", h.createPage)
			r.Get("/{id}", h.getPage)
			r.With(requireAuth).Patch("/{id}", h.updatePage)
			r.With(requireAuth).Delete("/{id}", h.deletePage)
		})

		r.Route("/media", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.listMedia)
			r.Post("/", h.createMedia)
			r.Get("/{id}", h.getMedia)
			r.Patch("/{id}", h.updateMedia)
			r.Delete("/{id}", h.deleteMedia)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Get("/{id}", h.getUser)
			r.Patch("/{id}", h.updateUser)
			r.Put("/{id}/password", h.changePassword)
			r.Delete("/{id}", h.deleteUser)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod)

	return router
}
