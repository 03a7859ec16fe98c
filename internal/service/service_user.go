// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/crypto"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
	"github.com/repraze/repraze-apps-sub001/models"
)

// userService manages accounts. Plain-text passwords never leave it: they
// are hashed before reaching the repository.
type userService struct {
	users  store.UserRepository
	hasher crypto.PasswordHasher

	ids       utils.IDGenerator
	validator validators.Validator

	logger *logger.Logger
}

func NewUserService(users store.UserRepository, hasher crypto.PasswordHasher, ids utils.IDGenerator, logger *logger.Logger) UserService {
	return &userService{
		users:     users,
		hasher:    hasher,
		ids:       ids,
		validator: validators.NewContentValidator(),
		logger:    logger,
	}
}

func (s *userService) List(ctx context.Context, params query.UserParams) (models.List[models.User], error) {
	list, err := s.users.List(ctx, params.Spec())
	if err != nil {
		return models.List[models.User]{}, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

func (s *userService) Get(ctx context.Context, id string) (models.User, error) {
	if err := access.Authorize(access.FromContext(ctx), access.Users, access.Read); err != nil {
		return models.User{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("error reading user %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input models.UserInput) (models.User, error) {
	if _, err := authorizeWrite(ctx, access.Users, access.Create); err != nil {
		return models.User{}, err
	}
	if err := s.validator.Validate(ctx, input, validators.OnCreate); err != nil {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(ctx, deref(input.Password))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.Create").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := s.users.Create(ctx, models.User{
		ID:           s.ids.Generate(),
		Username:     deref(input.Username),
		DisplayName:  deref(input.DisplayName),
		Email:        deref(input.Email),
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Update changes profile fields. A password in input is applied through
// ChangePassword after the profile update.
func (s *userService) Update(ctx context.Context, id string, input models.UserInput) (models.User, error) {
	if _, err := authorizeWrite(ctx, access.Users, access.Update); err != nil {
		return models.User{}, err
	}
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.User{}, err
	}

	changes := models.UserChanges{
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Email:       input.Email,
	}

	var (
		user models.User
		err  error
	)
	if changes == (models.UserChanges{}) {
		user, err = s.users.GetByID(ctx, id)
	} else {
		user, err = s.users.Update(ctx, id, changes)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error updating user %s: %w", id, err)
	}

	if input.Password != nil {
		if err := s.ChangePassword(ctx, id, models.PasswordChange{Password: *input.Password}); err != nil {
			return models.User{}, err
		}
	}

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, id string, change models.PasswordChange) error {
	if _, err := authorizeWrite(ctx, access.Users, access.Update); err != nil {
		return err
	}
	if err := s.validator.Validate(ctx, change); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(ctx, change.Password)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ChangePassword").Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("error changing password of user %s: %w", id, err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := authorizeWrite(ctx, access.Users, access.Delete); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting user %s: %w", id, err)
	}
	return nil
}
