// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Meta is the audit block attached to editable content. It is only exposed to
// authenticated callers that asked for the "meta" expansion.
type Meta struct {
	CreationUser Ref[UserSummary] `json:"creation_user"`
	LastEditUser Ref[UserSummary] `json:"last_edit_user"`
	Comment      string           `json:"comment,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
