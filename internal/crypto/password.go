// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements password hashing with scrypt.
package crypto

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/repraze/repraze-apps-sub001/internal/workers"
)

const separator = ":"

var (
	ErrInvalidHashParams = errors.New("invalid hash parameters")
	ErrGeneratingSalt    = errors.New("error generating salt")
	ErrDerivingKey       = errors.New("error deriving key")
)

// HashParams are the scrypt tuning parameters.
type HashParams struct {
	KeyLength       int
	SaltLength      int
	Cost            int
	BlockSize       int
	Parallelization int
}

// DefaultHashParams returns 64-byte keys, 16-byte salts, N=2^14, r=8, p=1.
func DefaultHashParams() HashParams {
	return HashParams{
		KeyLength:       64,
		SaltLength:      16,
		Cost:            1 << 14,
		BlockSize:       8,
		Parallelization: 1,
	}
}

// Validate rejects parameters scrypt cannot run with.
func (p HashParams) Validate() error {
	switch {
	case p.KeyLength <= 0:
		return fmt.Errorf("%w: key length must be positive", ErrInvalidHashParams)
	case p.SaltLength <= 0:
		return fmt.Errorf("%w: salt length must be positive", ErrInvalidHashParams)
	case p.Cost < 2 || p.Cost&(p.Cost-1) != 0:
		return fmt.Errorf("%w: cost must be a power of two greater than one", ErrInvalidHashParams)
	case p.BlockSize <= 0:
		return fmt.Errorf("%w: block size must be positive", ErrInvalidHashParams)
	case p.Parallelization <= 0:
		return fmt.Errorf("%w: parallelization must be positive", ErrInvalidHashParams)
	}
	return nil
}

// scryptHasher is the private implementation of [PasswordHasher].
type scryptHasher struct {
	params HashParams
	runner workers.Runner
	random io.Reader
}

// NewPasswordHasher returns a [PasswordHasher] that runs every derivation on
// runner.
func NewPasswordHasher(params HashParams, runner workers.Runner) (PasswordHasher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &scryptHasher{
		params: params,
		runner: runner,
		random: rand.Reader,
	}, nil
}

// Hash implements [PasswordHasher]. The result is
// base64(salt) + ":" + base64(key) using standard encoding.
func (h *scryptHasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingSalt, err)
	}

	key, err := h.derive(ctx, password, salt)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(salt) + separator +
		base64.StdEncoding.EncodeToString(key), nil
}

// Verify implements [PasswordHasher]. The candidate is derived with the stored
// salt and the stored key length, then compared in constant time.
func (h *scryptHasher) Verify(ctx context.Context, stored, candidate string) (bool, error) {
	saltPart, keyPart, found := strings.Cut(stored, separator)
	if !found {
		return false, nil
	}

	salt, err := base64.StdEncoding.DecodeString(saltPart)
	if err != nil || len(salt) == 0 {
		return false, nil
	}
	want, err := base64.StdEncoding.DecodeString(keyPart)
	if err != nil || len(want) == 0 {
		return false, nil
	}

	got, err := h.deriveLen(ctx, candidate, salt, len(want))
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *scryptHasher) derive(ctx context.Context, password string, salt []byte) ([]byte, error) {
	return h.deriveLen(ctx, password, salt, h.params.KeyLength)
}

func (h *scryptHasher) deriveLen(ctx context.Context, password string, salt []byte, keyLen int) ([]byte, error) {
	var key []byte
	err := h.runner.Do(ctx, func() error {
		var err error
		key, err = scrypt.Key([]byte(password), salt,
			h.params.Cost, h.params.BlockSize, h.params.Parallelization, keyLen)
		return err
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrDerivingKey, err)
	}

	return key, nil
}
