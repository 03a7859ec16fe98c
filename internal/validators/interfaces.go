// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request bodies before they reach the services.
//
// Every failure is a *ValidationError naming the offending field path, so the
// transport layer can answer 400 with a precise message. Only the first
// failing field is reported.
package validators

import "context"

// Validator validates the provided input. Scopes such as [OnCreate] enable
// additional rules.
type Validator interface {
	Validate(ctx context.Context, obj any, scopes ...string) error
}
