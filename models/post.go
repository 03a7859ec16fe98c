// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Post is a dated, taggable article.
type Post struct {
	ID string `json:"id"`

	// Name is the unique external identifier (slug) of the post.
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary,omitempty"`
	Content  string   `json:"content,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags"`

	Public   bool `json:"public"`
	Listed   bool `json:"listed"`
	Featured bool `json:"featured"`

	// PublishDate is nil for drafts. A public post is published once the
	// publish date is in the past.
	PublishDate *time.Time `json:"publish_date,omitempty"`

	Authors       []Ref[UserSummary] `json:"authors"`
	FeaturedMedia *Ref[Media]        `json:"featured_media,omitempty"`
	Meta          *Meta              `json:"meta,omitempty"`
}

// Identifier implements [Identified].
func (p Post) Identifier() string {
	return p.ID
}

// IsPublished reports whether the post is visible to anonymous callers at now.
func (p Post) IsPublished(now time.Time) bool {
	return p.Public && p.PublishDate != nil && p.PublishDate.Before(now)
}

// PostInput is the body of post create and update requests. Nil fields are
// left untouched on update. An empty PublishDate clears the publish date.
type PostInput struct {
	Name          *string   `json:"name,omitempty"`
	Title         *string   `json:"title,omitempty"`
	Summary       *string   `json:"summary,omitempty"`
	Content       *string   `json:"content,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Public        *bool     `json:"public,omitempty"`
	Listed        *bool     `json:"listed,omitempty"`
	Featured      *bool     `json:"featured,omitempty"`
	PublishDate   *string   `json:"publish_date,omitempty"`
	Authors       *[]string `json:"authors,omitempty"`
	FeaturedMedia *string   `json:"featured_media,omitempty"`
	Comment       *string   `json:"comment,omitempty"`
}

// PostChanges is a typed partial update of a post.
type PostChanges struct {
	Name             *string
	Title            *string
	Summary          *string
	Content          *string
	Category         *string
	Tags             *[]string
	Public           *bool
	Listed           *bool
	Featured         *bool
	PublishDate      *time.Time
	ClearPublishDate bool
	Authors          *[]string
	FeaturedMedia    *string
	Comment          *string
	LastEditUser     string
}
