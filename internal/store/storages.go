// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/repraze/repraze-apps-sub001/internal/logger"

// Storages groups the repositories handed to the service layer.
type Storages struct {
	PostRepository  PostRepository
	PageRepository  PageRepository
	MediaRepository MediaRepository
	UserRepository  UserRepository
}

// NewStorages builds every repository on db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		PostRepository:  NewPostRepository(db, log),
		PageRepository:  NewPageRepository(db, log),
		MediaRepository: NewMediaRepository(db, log),
		UserRepository:  NewUserRepository(db, log),
	}
}
