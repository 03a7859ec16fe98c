// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages shared by the HTTP handlers and
// the API client.
//
// The handlers write these strings into the {message} body of error
// responses; the client matches on status codes and only surfaces the
// message text, so changing a wording here does not break either side.
package app

const (
	// MsgOK is the body of the health probe.
	MsgOK = "ok"

	// MsgInvalidJSON is returned when a request body is not valid JSON.
	MsgInvalidJSON = "Invalid JSON body"

	// MsgInvalidCredentials is returned for an unknown username or a wrong
	// password. Both cases share one message.
	MsgInvalidCredentials = "Username or password incorrect"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token cannot be
	// verified or has expired.
	MsgTokenIsExpiredOrInvalid = "Token is expired or invalid"

	// MsgInvalidAuthorizationHeader is returned for a malformed or empty
	// Authorization header.
	MsgInvalidAuthorizationHeader = "Invalid Authorization header"

	// MsgAuthenticationRequired is returned when an anonymous caller reaches
	// an operation reserved for authenticated users.
	MsgAuthenticationRequired = "Authentication required"

	MsgNotFound      = "Not found"
	MsgAlreadyExists = "Already exists"
)
