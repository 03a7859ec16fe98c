// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the CMS API.
//
// Each invocation runs one command against a [adapter.ServerAdapter] and
// prints the decoded response as indented JSON.
package client
