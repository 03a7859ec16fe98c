// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim is the identity carried by a bearer token. It is derived fresh from
// the signed token on every request and never persisted.
type Claim struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
}

// ClaimFor builds the claim issued for a user account.
func ClaimFor(u User) Claim {
	return Claim{SubjectID: u.ID, SubjectName: u.Name()}
}

// TokenClaims is the JWT payload: the registered claims plus the subject name.
// The subject id travels in the "sub" claim.
type TokenClaims struct {
	jwt.RegisteredClaims

	Name *string `json:"name,omitempty"`
}

// Token wraps a signed JWT together with the claim it carries.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"token"`

	// Claim is the decoded identity.
	Claim Claim `json:"-"`

	// ExpiresAt is zero when the token does not expire.
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
