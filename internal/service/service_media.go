// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
	"github.com/repraze/repraze-apps-sub001/models"
)

// mediaService manages media descriptors. Uploading the files themselves is
// handled outside this server.
type mediaService struct {
	media store.MediaRepository
	users store.UserRepository

	ids       utils.IDGenerator
	validator validators.Validator

	logger *logger.Logger
}

func NewMediaService(storages *store.Storages, ids utils.IDGenerator, logger *logger.Logger) MediaService {
	return &mediaService{
		media:     storages.MediaRepository,
		users:     storages.UserRepository,
		ids:       ids,
		validator: validators.NewContentValidator(),
		logger:    logger,
	}
}

func (s *mediaService) List(ctx context.Context, params query.MediaParams) (models.List[models.Media], error) {
	list, err := s.media.List(ctx, params.Spec())
	if err != nil {
		return models.List[models.Media]{}, fmt.Errorf("error listing media: %w", err)
	}

	list.Items = newExpander(s.users, s.media).media(ctx, list.Items, params.Expand)
	return list, nil
}

func (s *mediaService) Get(ctx context.Context, id string, expand query.Expand) (models.Media, error) {
	if err := access.Authorize(access.FromContext(ctx), access.Media, access.Read); err != nil {
		return models.Media{}, err
	}

	item, err := s.media.GetByID(ctx, id)
	if err != nil {
		return models.Media{}, fmt.Errorf("error reading media %s: %w", id, err)
	}

	return newExpander(s.users, s.media).media(ctx, []models.Media{item}, expand)[0], nil
}

func (s *mediaService) Create(ctx context.Context, input models.MediaInput) (models.Media, error) {
	claim, err := authorizeWrite(ctx, access.Media, access.Create)
	if err != nil {
		return models.Media{}, err
	}
	if err := s.validator.Validate(ctx, input, validators.OnCreate); err != nil {
		return models.Media{}, err
	}

	created, err := s.media.Create(ctx, models.Media{
		ID:          s.ids.Generate(),
		Name:        deref(input.Name),
		Title:       deref(input.Title),
		Description: deref(input.Description),
		Filename:    deref(input.Filename),
		ContentType: deref(input.ContentType),
		Size:        deref(input.Size),
		Public:      deref(input.Public),
		Meta:        auditMeta(claim, input.Comment),
	})
	if err != nil {
		return models.Media{}, fmt.Errorf("error creating media: %w", err)
	}
	return created, nil
}

func (s *mediaService) Update(ctx context.Context, id string, input models.MediaInput) (models.Media, error) {
	claim, err := authorizeWrite(ctx, access.Media, access.Update)
	if err != nil {
		return models.Media{}, err
	}
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Media{}, err
	}

	updated, err := s.media.Update(ctx, id, models.MediaChanges{
		Name:         input.Name,
		Title:        input.Title,
		Description:  input.Description,
		Filename:     input.Filename,
		ContentType:  input.ContentType,
		Size:         input.Size,
		Public:       input.Public,
		Comment:      input.Comment,
		LastEditUser: claim.SubjectID,
	})
	if err != nil {
		return models.Media{}, fmt.Errorf("error updating media %s: %w", id, err)
	}
	return updated, nil
}

func (s *mediaService) Delete(ctx context.Context, id string) error {
	if _, err := authorizeWrite(ctx, access.Media, access.Delete); err != nil {
		return err
	}

	if err := s.media.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting media %s: %w", id, err)
	}
	return nil
}
