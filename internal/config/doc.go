// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the content server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Unset values are filled with defaults before validation. The entry point is
// [GetStructuredConfig]; the command-line client reads its own environment-only
// settings with [GetClientConfig].
package config
