// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package access decides what a caller may do.
//
// A request is made either by an anonymous caller or by a caller holding a
// verified token claim. The decision is computed once per request by the
// authentication middleware and travels in the request context.
package access

import (
	"context"
	"errors"

	"github.com/repraze/repraze-apps-sub001/models"
)

// ErrAuthenticationRequired is returned when an anonymous caller attempts an
// operation reserved for authenticated callers.
var ErrAuthenticationRequired = errors.New("authentication required")

// Caller is either anonymous or authenticated with a claim.
type Caller struct {
	claim *models.Claim
}

// Anonymous returns the caller used when no token was supplied.
func Anonymous() Caller {
	return Caller{}
}

// Authenticated returns a caller holding claim.
func Authenticated(claim models.Claim) Caller {
	return Caller{claim: &claim}
}

// IsAuthenticated reports whether the caller holds a claim.
func (c Caller) IsAuthenticated() bool {
	return c.claim != nil
}

// Claim returns the caller's claim and whether one is present.
func (c Caller) Claim() (models.Claim, bool) {
	if c.claim == nil {
		return models.Claim{}, false
	}
	return *c.claim, true
}

// SubjectID returns the claim subject, or "" for anonymous callers.
func (c Caller) SubjectID() string {
	if c.claim == nil {
		return ""
	}
	return c.claim.SubjectID
}

// Require returns the claim or ErrAuthenticationRequired.
func (c Caller) Require() (models.Claim, error) {
	claim, ok := c.Claim()
	if !ok {
		return models.Claim{}, ErrAuthenticationRequired
	}
	return claim, nil
}

func (c Caller) String() string {
	if c.claim == nil {
		return "anonymous"
	}
	return "user:" + c.claim.SubjectID
}

type callerCtxKey struct{}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey{}, c)
}

// FromContext returns the caller stored in ctx, or Anonymous when none is.
func FromContext(ctx context.Context) Caller {
	c, ok := ctx.Value(callerCtxKey{}).(Caller)
	if !ok {
		return Anonymous()
	}
	return c
}
