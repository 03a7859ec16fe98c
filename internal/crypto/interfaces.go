// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and checks password hashes.
//
// Hash returns a self-contained stored value (salt and derived key). Verify
// reports whether candidate matches stored; a malformed stored value is a
// mismatch, not an error. Errors are reserved for infrastructure failures such
// as an exhausted random source or a cancelled context.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, stored, candidate string) (bool, error)
}
