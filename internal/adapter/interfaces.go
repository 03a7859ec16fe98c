// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the CMS HTTP API.
//
// [ServerAdapter] hides the wire format from the command-line client. Error
// responses are mapped from their status codes to the sentinel values in
// errors.go so that callers can use [errors.Is] (e.g. [ErrNotFound] for 404,
// [ErrForbidden] for 403). The server message is kept in the error text.
package adapter

import (
	"context"
	"net/url"

	"github.com/repraze/repraze-apps-sub001/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the CMS server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every following request.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Login exchanges credentials for a token and stores it via SetToken.
	Login(ctx context.Context, credentials models.Credentials) (models.LoginResponse, error)

	// Me returns the identity carried by the stored token.
	Me(ctx context.Context) (models.Claim, error)

	// RefreshToken reissues the stored token and replaces it.
	RefreshToken(ctx context.Context) (models.LoginResponse, error)

	// Version returns the build information of the server.
	Version(ctx context.Context) (models.AppBuildInfo, error)

	// ListPosts forwards params verbatim as the query string. The server
	// applies its own coercion and validation.
	ListPosts(ctx context.Context, params url.Values) (Page[models.Post], error)

	// GetPost fetches a post by id or name with the given expansions.
	GetPost(ctx context.Context, id string, expand []string) (models.Post, error)

	CreatePost(ctx context.Context, input models.PostInput) (models.Post, error)
	UpdatePost(ctx context.Context, id string, input models.PostInput) (models.Post, error)
	DeletePost(ctx context.Context, id string) error

	CreateUser(ctx context.Context, input models.UserInput) (models.User, error)
	ChangePassword(ctx context.Context, id, password string) error
}

// Page is one decoded page of a list endpoint.
type Page[T any] struct {
	Items []T
	Meta  models.ListMeta
}
