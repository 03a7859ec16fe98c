// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists content in PostgreSQL and translates query
// specifications into SQL.
package store

import (
	"context"

	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_mock.go -package=mock

// PostRepository stores posts.
type PostRepository interface {
	List(ctx context.Context, spec query.Spec) (models.List[models.Post], error)
	// GetByID returns ErrNotFound when the post does not exist or does not
	// satisfy visible.
	GetByID(ctx context.Context, id string, visible query.Predicate) (models.Post, error)
	Create(ctx context.Context, post models.Post) (models.Post, error)
	Update(ctx context.Context, id string, changes models.PostChanges) (models.Post, error)
	Delete(ctx context.Context, id string) error
}

// PageRepository stores pages.
type PageRepository interface {
	List(ctx context.Context, spec query.Spec) (models.List[models.Page], error)
	GetByID(ctx context.Context, id string, visible query.Predicate) (models.Page, error)
	Create(ctx context.Context, page models.Page) (models.Page, error)
	Update(ctx context.Context, id string, changes models.PageChanges) (models.Page, error)
	Delete(ctx context.Context, id string) error
}

// MediaRepository stores media descriptors.
type MediaRepository interface {
	List(ctx context.Context, spec query.Spec) (models.List[models.Media], error)
	GetByID(ctx context.Context, id string) (models.Media, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Media, error)
	Create(ctx context.Context, media models.Media) (models.Media, error)
	Update(ctx context.Context, id string, changes models.MediaChanges) (models.Media, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository stores user accounts.
type UserRepository interface {
	List(ctx context.Context, spec query.Spec) (models.List[models.User], error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, id string, changes models.UserChanges) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
