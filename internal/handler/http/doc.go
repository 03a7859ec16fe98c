// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the content server.
//
// It wires routes and middleware and translates service results and errors
// into JSON responses. Request tracing, access logging, compression and
// caller authentication happen here before requests reach the service layer.
package http
