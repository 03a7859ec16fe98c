// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// The password hash never leaves the server.
type User struct {
	// ID is the durable identifier of the account. It becomes the token subject.
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// DisplayName is shown next to authored content and becomes the token
	// subject name. Username is used when it is empty.
	DisplayName string `json:"display_name"`

	Email string `json:"email,omitempty"`

	// PasswordHash is the packed salt and derived key. See crypto.PasswordHasher.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identifier implements [Identified].
func (u User) Identifier() string {
	return u.ID
}

// Name returns the display name, falling back to the username.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Summary returns the public projection of the account embedded in expanded
// relations (authors, audit users).
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

// UserSummary is the public projection of a [User].
type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Identifier implements [Identified].
func (u UserSummary) Identifier() string {
	return u.ID
}

// Credentials is the body of a basic login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInput is the body of user create and update requests. Nil fields are
// left untouched on update. A password on update replaces the current one.
type UserInput struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// UserChanges is a partial update of a user account.
type UserChanges struct {
	Username    *string
	DisplayName *string
	Email       *string
}

// PasswordChange is the body of a password change request.
type PasswordChange struct {
	Password string `json:"password"`
}
