// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/models"
)

var postsTable = table[models.Post]{
	name:    tablePosts,
	columns: postColumns,
	fields:  postFields,
	scan:    scanPost,
}

// postRepository is the PostgreSQL-backed implementation of [PostRepository].
type postRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

func (r *postRepository) List(ctx context.Context, spec query.Spec) (models.List[models.Post], error) {
	return listPage(ctx, r.db, postsTable, spec)
}

func (r *postRepository) GetByID(ctx context.Context, id string, visible query.Predicate) (models.Post, error) {
	post, err := getOne(ctx, r.db, postsTable, query.AllOf(query.Eq{Field: "id", Value: id}, visible))
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).
			Str("func", "*postRepository.GetByID").
			Str("id", id).
			Msg("post lookup failed")
		return models.Post{}, err
	}
	return post, nil
}

func (r *postRepository) Create(ctx context.Context, post models.Post) (models.Post, error) {
	var meta models.Meta
	if post.Meta != nil {
		meta = *post.Meta
	}

	var featuredMedia *string
	if post.FeaturedMedia != nil {
		id := post.FeaturedMedia.ID()
		featuredMedia = &id
	}

	created, err := insertRow(ctx, r.db, postsTable, map[string]any{
		"id":                post.ID,
		"name":              post.Name,
		"title":             post.Title,
		"summary":           post.Summary,
		"content":           post.Content,
		"category":          post.Category,
		"tags":              textArray(post.Tags),
		"public":            post.Public,
		"listed":            post.Listed,
		"featured":          post.Featured,
		"publish_date":      nullTime(post.PublishDate),
		"author_ids":        textArray(models.RefIDs(post.Authors)),
		"featured_media_id": nullString(featuredMedia),
		"creation_user":     meta.CreationUser.ID(),
		"last_edit_user":    meta.LastEditUser.ID(),
		"comment":           meta.Comment,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*postRepository.Create").
			Str("name", post.Name).
			Msg("failed to create post")
		return models.Post{}, err
	}

	return created, nil
}

func (r *postRepository) Update(ctx context.Context, id string, changes models.PostChanges) (models.Post, error) {
	set := map[string]any{}
	setIfPresent(set, "name", changes.Name)
	setIfPresent(set, "title", changes.Title)
	setIfPresent(set, "summary", changes.Summary)
	setIfPresent(set, "content", changes.Content)
	setIfPresent(set, "category", changes.Category)
	setIfPresent(set, "public", changes.Public)
	setIfPresent(set, "listed", changes.Listed)
	setIfPresent(set, "featured", changes.Featured)
	setIfPresent(set, "comment", changes.Comment)
	if changes.Tags != nil {
		set["tags"] = textArray(*changes.Tags)
	}
	if changes.Authors != nil {
		set["author_ids"] = textArray(*changes.Authors)
	}
	switch {
	case changes.ClearPublishDate:
		set["publish_date"] = nil
	case changes.PublishDate != nil:
		set["publish_date"] = *changes.PublishDate
	}
	if changes.FeaturedMedia != nil {
		set["featured_media_id"] = nullString(changes.FeaturedMedia)
	}
	if changes.LastEditUser != "" {
		set["last_edit_user"] = changes.LastEditUser
	}

	updated, err := updateRow(ctx, r.db, postsTable, id, set)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*postRepository.Update").
			Str("id", id).
			Msg("failed to update post")
		return models.Post{}, err
	}

	return updated, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	if err := deleteRow(ctx, r.db, tablePosts, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*postRepository.Delete").
			Str("id", id).
			Msg("failed to delete post")
		return err
	}
	return nil
}

func scanPost(row rowScanner) (models.Post, error) {
	var (
		p             models.Post
		authorIDs     []string
		publishDate   sql.NullTime
		featuredMedia sql.NullString
		creationUser  string
		lastEditUser  string
		meta          models.Meta
	)

	err := withTypeMap(func(m *pgtype.Map) error {
		return row.Scan(
			&p.ID,
			&p.Name,
			&p.Title,
			&p.Summary,
			&p.Content,
			&p.Category,
			m.SQLScanner(&p.Tags),
			&p.Public,
			&p.Listed,
			&p.Featured,
			&publishDate,
			m.SQLScanner(&authorIDs),
			&featuredMedia,
			&creationUser,
			&lastEditUser,
			&meta.Comment,
			&meta.CreatedAt,
			&meta.UpdatedAt,
		)
	})
	if err != nil {
		return models.Post{}, err
	}

	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.PublishDate = timePtr(publishDate)
	p.Authors = models.References[models.UserSummary](authorIDs)
	if featuredMedia.Valid {
		ref := models.Reference[models.Media](featuredMedia.String)
		p.FeaturedMedia = &ref
	}
	meta.CreationUser = models.Reference[models.UserSummary](creationUser)
	meta.LastEditUser = models.Reference[models.UserSummary](lastEditUser)
	p.Meta = &meta

	return p, nil
}
