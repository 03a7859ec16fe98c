// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP transport of the content server until a stop
// signal arrives, then shuts it down gracefully.
package server
