// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/repraze/repraze-apps-sub001/internal/config"
	"github.com/repraze/repraze-apps-sub001/internal/crypto"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/models"
)

// Services groups every service handed to the transport layer.
type Services struct {
	AuthService    AuthService
	PostService    PostService
	PageService    PageService
	MediaService   MediaService
	UserService    UserService
	AppInfoService AppInfoService
}

func NewServices(
	storages *store.Storages,
	hasher crypto.PasswordHasher,
	cfg config.App,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	ids := utils.NewUUIDGenerator()
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, hasher, cfg, logger),
		PostService:    NewPostService(storages, ids, logger),
		PageService:    NewPageService(storages, ids, logger),
		MediaService:   NewMediaService(storages, ids, logger),
		UserService:    NewUserService(storages.UserRepository, hasher, ids, logger),
		AppInfoService: appInfo,
	}, nil
}
