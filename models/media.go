// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Media describes an uploaded file. The bytes themselves live outside the
// database; only the descriptor is managed here.
type Media struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Public      bool   `json:"public"`
	Meta        *Meta  `json:"meta,omitempty"`
}

// Identifier implements [Identified].
func (m Media) Identifier() string {
	return m.ID
}

// MediaInput is the body of media create and update requests.
type MediaInput struct {
	Name        *string `json:"name,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
	Size        *int64  `json:"size,omitempty"`
	Public      *bool   `json:"public,omitempty"`
	Comment     *string `json:"comment,omitempty"`
}

// MediaChanges is a typed partial update of a media descriptor.
type MediaChanges struct {
	Name         *string
	Title        *string
	Description  *string
	Filename     *string
	ContentType  *string
	Size         *int64
	Public       *bool
	Comment      *string
	LastEditUser string
}
