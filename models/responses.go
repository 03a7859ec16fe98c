// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response is the success envelope of every data-bearing endpoint.
type Response struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// MessageResponse is the body of simple status and error responses.
type MessageResponse struct {
	Message string `json:"message"`
	// Field is the path of the offending input on validation failures.
	Field string `json:"field,omitempty"`
}

// ListMeta echoes the effective list parameters next to the total count.
type ListMeta struct {
	Filter any   `json:"filter"`
	Sort   any   `json:"sort"`
	Page   any   `json:"page"`
	Expand any   `json:"expand,omitempty"`
	Total  int64 `json:"total"`
}

// LoginResponse is returned by a successful login or token refresh.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt any          `json:"expires_at,omitempty"`
	User      *UserSummary `json:"user,omitempty"`
}
