// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
	"github.com/repraze/repraze-apps-sub001/models"
)

type pageService struct {
	pages store.PageRepository
	users store.UserRepository
	media store.MediaRepository

	ids       utils.IDGenerator
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

func NewPageService(storages *store.Storages, ids utils.IDGenerator, logger *logger.Logger) PageService {
	return &pageService{
		pages:     storages.PageRepository,
		users:     storages.UserRepository,
		media:     storages.MediaRepository,
		ids:       ids,
		validator: validators.NewContentValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *pageService) List(ctx context.Context, params query.PageParams) (models.List[models.Page], error) {
	list, err := s.pages.List(ctx, params.Spec())
	if err != nil {
		return models.List[models.Page]{}, fmt.Errorf("error listing pages: %w", err)
	}

	list.Items = newExpander(s.users, s.media).pages(ctx, list.Items, params.Expand)
	return list, nil
}

func (s *pageService) Get(ctx context.Context, id string, expand query.Expand) (models.Page, error) {
	caller := access.FromContext(ctx)
	if err := access.Authorize(caller, access.Pages, access.Read); err != nil {
		return models.Page{}, err
	}

	page, err := s.pages.GetByID(ctx, id, query.Pages.ReadPredicate(caller, s.now()))
	if err != nil {
		return models.Page{}, fmt.Errorf("error reading page %s: %w", id, err)
	}

	return newExpander(s.users, s.media).pages(ctx, []models.Page{page}, expand)[0], nil
}

func (s *pageService) Create(ctx context.Context, input models.PageInput) (models.Page, error) {
	claim, err := authorizeWrite(ctx, access.Pages, access.Create)
	if err != nil {
		return models.Page{}, err
	}
	if err := s.validator.Validate(ctx, input, validators.OnCreate); err != nil {
		return models.Page{}, err
	}

	page := models.Page{
		ID:      s.ids.Generate(),
		Name:    deref(input.Name),
		Title:   deref(input.Title),
		Content: deref(input.Content),
		Public:  deref(input.Public),
		Meta:    auditMeta(claim, input.Comment),
	}
	if input.FeaturedMedia != nil && *input.FeaturedMedia != "" {
		ref := models.Reference[models.Media](*input.FeaturedMedia)
		page.FeaturedMedia = &ref
	}

	created, err := s.pages.Create(ctx, page)
	if err != nil {
		return models.Page{}, fmt.Errorf("error creating page: %w", err)
	}
	return created, nil
}

func (s *pageService) Update(ctx context.Context, id string, input models.PageInput) (models.Page, error) {
	claim, err := authorizeWrite(ctx, access.Pages, access.Update)
	if err != nil {
		return models.Page{}, err
	}
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Page{}, err
	}

	updated, err := s.pages.Update(ctx, id, models.PageChanges{
		Name:          input.Name,
		Title:         input.Title,
		Content:       input.Content,
		Public:        input.Public,
		FeaturedMedia: input.FeaturedMedia,
		Comment:       input.Comment,
		LastEditUser:  claim.SubjectID,
	})
	if err != nil {
		return models.Page{}, fmt.Errorf("error updating page %s: %w", id, err)
	}
	return updated, nil
}

func (s *pageService) Delete(ctx context.Context, id string) error {
	if _, err := authorizeWrite(ctx, access.Pages, access.Delete); err != nil {
		return err
	}

	if err := s.pages.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting page %s: %w", id, err)
	}
	return nil
}
