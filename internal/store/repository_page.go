// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/models"
)

var pagesTable = table[models.Page]{
	name:    tablePages,
	columns: pageColumns,
	fields:  pageFields,
	scan:    scanPage,
}

// pageRepository is the PostgreSQL-backed implementation of [PageRepository].
type pageRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewPageRepository(db *DB, logger *logger.Logger) PageRepository {
	logger.Debug().Msg("creating page repository")
	return &pageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *pageRepository) List(ctx context.Context, spec query.Spec) (models.List[models.Page], error) {
	return listPage(ctx, r.db, pagesTable, spec)
}

func (r *pageRepository) GetByID(ctx context.Context, id string, visible query.Predicate) (models.Page, error) {
	return getOne(ctx, r.db, pagesTable, query.AllOf(query.Eq{Field: "id", Value: id}, visible))
}

func (r *pageRepository) Create(ctx context.Context, page models.Page) (models.Page, error) {
	var meta models.Meta
	if page.Meta != nil {
		meta = *page.Meta
	}

	var featuredMedia *string
	if page.FeaturedMedia != nil {
		id := page.FeaturedMedia.ID()
		featuredMedia = &id
	}

	created, err := insertRow(ctx, r.db, pagesTable, map[string]any{
		"id":                page.ID,
		"name":              page.Name,
		"title":             page.Title,
		"content":           page.Content,
		"public":            page.Public,
		"featured_media_id": nullString(featuredMedia),
		"creation_user":     meta.CreationUser.ID(),
		"last_edit_user":    meta.LastEditUser.ID(),
		"comment":           meta.Comment,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*pageRepository.Create").
			Str("name", page.Name).
			Msg("failed to create page")
		return models.Page{}, err
	}

	return created, nil
}

func (r *pageRepository) Update(ctx context.Context, id string, changes models.PageChanges) (models.Page, error) {
	set := map[string]any{}
	setIfPresent(set, "name", changes.Name)
	setIfPresent(set, "title", changes.Title)
	setIfPresent(set, "content", changes.Content)
	setIfPresent(set, "public", changes.Public)
	setIfPresent(set, "comment", changes.Comment)
	if changes.FeaturedMedia != nil {
		set["featured_media_id"] = nullString(changes.FeaturedMedia)
	}
	if changes.LastEditUser != "" {
		set["last_edit_user"] = changes.LastEditUser
	}

	updated, err := updateRow(ctx, r.db, pagesTable, id, set)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*pageRepository.Update").
			Str("id", id).
			Msg("failed to update page")
		return models.Page{}, err
	}

	return updated, nil
}

func (r *pageRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, tablePages, id)
}

func scanPage(row rowScanner) (models.Page, error) {
	var (
		p             models.Page
		featuredMedia sql.NullString
		creationUser  string
		lastEditUser  string
		meta          models.Meta
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Title,
		&p.Content,
		&p.Public,
		&featuredMedia,
		&creationUser,
		&lastEditUser,
		&meta.Comment,
		&meta.CreatedAt,
		&meta.UpdatedAt,
	)
	if err != nil {
		return models.Page{}, err
	}

	if featuredMedia.Valid {
		ref := models.Reference[models.Media](featuredMedia.String)
		p.FeaturedMedia = &ref
	}
	meta.CreationUser = models.Reference[models.UserSummary](creationUser)
	meta.LastEditUser = models.Reference[models.UserSummary](lastEditUser)
	p.Meta = &meta

	return p, nil
}
