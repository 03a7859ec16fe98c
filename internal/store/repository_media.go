// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/models"
)

var mediaTable = table[models.Media]{
	name:    tableMedia,
	columns: mediaColumns,
	fields:  mediaFields,
	scan:    scanMedia,
}

// mediaRepository is the PostgreSQL-backed implementation of [MediaRepository].
type mediaRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewMediaRepository(db *DB, logger *logger.Logger) MediaRepository {
	logger.Debug().Msg("creating media repository")
	return &mediaRepository{
		db:     db,
		logger: logger,
	}
}

func (r *mediaRepository) List(ctx context.Context, spec query.Spec) (models.List[models.Media], error) {
	return listPage(ctx, r.db, mediaTable, spec)
}

func (r *mediaRepository) GetByID(ctx context.Context, id string) (models.Media, error) {
	return getOne(ctx, r.db, mediaTable, query.Eq{Field: "id", Value: id})
}

// GetByIDs backs batched relation expansion.
func (r *mediaRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Media, error) {
	items, err := getByIDs(ctx, r.db, mediaTable, ids)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*mediaRepository.GetByIDs").
			Int("ids", len(ids)).
			Msg("failed to load media")
		return nil, err
	}
	return items, nil
}

func (r *mediaRepository) Create(ctx context.Context, media models.Media) (models.Media, error) {
	var meta models.Meta
	if media.Meta != nil {
		meta = *media.Meta
	}

	created, err := insertRow(ctx, r.db, mediaTable, map[string]any{
		"id":             media.ID,
		"name":           media.Name,
		"title":          media.Title,
		"description":    media.Description,
		"filename":       media.Filename,
		"content_type":   media.ContentType,
		"size":           media.Size,
		"public":         media.Public,
		"creation_user":  meta.CreationUser.ID(),
		"last_edit_user": meta.LastEditUser.ID(),
		"comment":        meta.Comment,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*mediaRepository.Create").
			Str("name", media.Name).
			Msg("failed to create media")
		return models.Media{}, err
	}

	return created, nil
}

func (r *mediaRepository) Update(ctx context.Context, id string, changes models.MediaChanges) (models.Media, error) {
	set := map[string]any{}
	setIfPresent(set, "name", changes.Name)
	setIfPresent(set, "title", changes.Title)
	setIfPresent(set, "description", changes.Description)
	setIfPresent(set, "filename", changes.Filename)
	setIfPresent(set, "content_type", changes.ContentType)
	setIfPresent(set, "size", changes.Size)
	setIfPresent(set, "public", changes.Public)
	setIfPresent(set, "comment", changes.Comment)
	if changes.LastEditUser != "" {
		set["last_edit_user"] = changes.LastEditUser
	}

	return updateRow(ctx, r.db, mediaTable, id, set)
}

func (r *mediaRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, tableMedia, id)
}

func scanMedia(row rowScanner) (models.Media, error) {
	var (
		m            models.Media
		creationUser string
		lastEditUser string
		meta         models.Meta
	)

	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Title,
		&m.Description,
		&m.Filename,
		&m.ContentType,
		&m.Size,
		&m.Public,
		&creationUser,
		&lastEditUser,
		&meta.Comment,
		&meta.CreatedAt,
		&meta.UpdatedAt,
	)
	if err != nil {
		return models.Media{}, err
	}

	meta.CreationUser = models.Reference[models.UserSummary](creationUser)
	meta.LastEditUser = models.Reference[models.UserSummary](lastEditUser)
	m.Meta = &meta

	return m, nil
}
