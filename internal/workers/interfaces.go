// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers bounds the concurrency of CPU-heavy work such as password
// key derivation, so a burst of login attempts cannot starve request
// handling.
package workers

import "context"

// Runner executes a task on a bounded set of workers.
//
// Do blocks until a slot is free, runs fn and returns its error. If ctx is
// cancelled while waiting for a slot or for fn to finish, Do returns
// ctx.Err(); a task that has already started keeps its slot until it ends.
type Runner interface {
	Do(ctx context.Context, fn func() error) error
}
