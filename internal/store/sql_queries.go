// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	tablePosts = "posts"
	tablePages = "pages"
	tableMedia = "media"
	tableUsers = "users"
)

var (
	postColumns = []string{
		"id", "name", "title", "summary", "content", "category", "tags",
		"public", "listed", "featured", "publish_date", "author_ids", "featured_media_id",
		"creation_user", "last_edit_user", "comment", "created_at", "updated_at",
	}
	pageColumns = []string{
		"id", "name", "title", "content", "public", "featured_media_id",
		"creation_user", "last_edit_user", "comment", "created_at", "updated_at",
	}
	mediaColumns = []string{
		"id", "name", "title", "description", "filename", "content_type", "size", "public",
		"creation_user", "last_edit_user", "comment", "created_at", "updated_at",
	}
	userColumns = []string{
		"id", "username", "display_name", "email", "password_hash", "created_at", "updated_at",
	}
)

var (
	postFields = fieldMap{
		"id": "id", "name": "name", "title": "title", "category": "category", "tags": "tags",
		"public": "public", "listed": "listed", "featured": "featured",
		"publish_date": "publish_date", "created_at": "created_at", "updated_at": "updated_at",
	}
	pageFields = fieldMap{
		"id": "id", "name": "name", "title": "title", "public": "public",
		"created_at": "created_at", "updated_at": "updated_at",
	}
	mediaFields = fieldMap{
		"id": "id", "name": "name", "title": "title", "public": "public",
		"created_at": "created_at", "updated_at": "updated_at",
	}
	userFields = fieldMap{
		"id": "id", "username": "username", "display_name": "display_name",
		"created_at": "created_at",
	}
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// typeMaps pools pgtype maps used to decode array columns; a Map caches scan
// plans and is not safe for concurrent use.
var typeMaps = sync.Pool{
	New: func() any { return pgtype.NewMap() },
}

func withTypeMap(fn func(m *pgtype.Map) error) error {
	m := typeMaps.Get().(*pgtype.Map)
	defer typeMaps.Put(m)
	return fn(m)
}

// textArray returns a non-nil slice so it encodes as an empty array, not NULL.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// setIfPresent adds column to set when value is non-nil.
func setIfPresent[T any](set map[string]any, column string, value *T) {
	if value != nil {
		set[column] = *value
	}
}
