// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Page is a standalone, undated piece of content.
type Page struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Title         string      `json:"title"`
	Content       string      `json:"content,omitempty"`
	Public        bool        `json:"public"`
	FeaturedMedia *Ref[Media] `json:"featured_media,omitempty"`
	Meta          *Meta       `json:"meta,omitempty"`
}

// Identifier implements [Identified].
func (p Page) Identifier() string {
	return p.ID
}

// PageInput is the body of page create and update requests.
type PageInput struct {
	Name          *string `json:"name,omitempty"`
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	Public        *bool   `json:"public,omitempty"`
	FeaturedMedia *string `json:"featured_media,omitempty"`
	Comment       *string `json:"comment,omitempty"`
}

// PageChanges is a typed partial update of a page.
type PageChanges struct {
	Name          *string
	Title         *string
	Content       *string
	Public        *bool
	FeaturedMedia *string
	Comment       *string
	LastEditUser  string
}
