// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService verifies credentials and manages bearer tokens.
type AuthService interface {
	// Login returns the account matching credentials or ErrInvalidCredentials.
	// It never returns before the randomized login delay has elapsed.
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, claim models.Claim) (models.Token, error)
	// ParseToken returns the verified claim or ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Claim, error)
}

// PostService manages posts. The caller is taken from the context.
type PostService interface {
	List(ctx context.Context, params query.PostParams) (models.List[models.Post], error)
	Get(ctx context.Context, id string, expand query.Expand) (models.Post, error)
	// Related lists up to five listed posts sharing a tag with post id.
	Related(ctx context.Context, id string, expand query.Expand) ([]models.Post, error)
	Create(ctx context.Context, input models.PostInput) (models.Post, error)
	Update(ctx context.Context, id string, input models.PostInput) (models.Post, error)
	Delete(ctx context.Context, id string) error
}

// PageService manages pages.
type PageService interface {
	List(ctx context.Context, params query.PageParams) (models.List[models.Page], error)
	Get(ctx context.Context, id string, expand query.Expand) (models.Page, error)
	Create(ctx context.Context, input models.PageInput) (models.Page, error)
	Update(ctx context.Context, id string, input models.PageInput) (models.Page, error)
	Delete(ctx context.Context, id string) error
}

// MediaService manages media descriptors.
type MediaService interface {
	List(ctx context.Context, params query.MediaParams) (models.List[models.Media], error)
	Get(ctx context.Context, id string, expand query.Expand) (models.Media, error)
	Create(ctx context.Context, input models.MediaInput) (models.Media, error)
	Update(ctx context.Context, id string, input models.MediaInput) (models.Media, error)
	Delete(ctx context.Context, id string) error
}

// UserService manages accounts.
type UserService interface {
	List(ctx context.Context, params query.UserParams) (models.List[models.User], error)
	Get(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, input models.UserInput) (models.User, error)
	Update(ctx context.Context, id string, input models.UserInput) (models.User, error)
	ChangePassword(ctx context.Context, id string, change models.PasswordChange) error
	Delete(ctx context.Context, id string) error
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
