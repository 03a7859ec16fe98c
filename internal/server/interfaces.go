// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT and then shuts down.
	RunServer()

	// Run serves until ctx is done or serving fails, then shuts down.
	Run(ctx context.Context) error
}
