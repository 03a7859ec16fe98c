// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/coerce"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
	"github.com/repraze/repraze-apps-sub001/models"
)

type postService struct {
	posts store.PostRepository
	users store.UserRepository
	media store.MediaRepository

	ids       utils.IDGenerator
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

func NewPostService(storages *store.Storages, ids utils.IDGenerator, logger *logger.Logger) PostService {
	return &postService{
		posts:     storages.PostRepository,
		users:     storages.UserRepository,
		media:     storages.MediaRepository,
		ids:       ids,
		validator: validators.NewContentValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *postService) List(ctx context.Context, params query.PostParams) (models.List[models.Post], error) {
	list, err := s.posts.List(ctx, params.Spec())
	if err != nil {
		return models.List[models.Post]{}, fmt.Errorf("error listing posts: %w", err)
	}

	list.Items = newExpander(s.users, s.media).posts(ctx, list.Items, params.Expand)
	return list, nil
}

// Get returns store.ErrNotFound for posts the caller may not see.
func (s *postService) Get(ctx context.Context, id string, expand query.Expand) (models.Post, error) {
	post, err := s.read(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	return newExpander(s.users, s.media).posts(ctx, []models.Post{post}, expand)[0], nil
}

func (s *postService) read(ctx context.Context, id string) (models.Post, error) {
	caller := access.FromContext(ctx)
	if err := access.Authorize(caller, access.Posts, access.Read); err != nil {
		return models.Post{}, err
	}

	post, err := s.posts.GetByID(ctx, id, query.Posts.ReadPredicate(caller, s.now()))
	if err != nil {
		return models.Post{}, fmt.Errorf("error reading post %s: %w", id, err)
	}
	return post, nil
}

func (s *postService) Related(ctx context.Context, id string, expand query.Expand) ([]models.Post, error) {
	post, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(post.Tags) == 0 {
		return []models.Post{}, nil
	}

	list, err := s.posts.List(ctx, query.RelatedPosts(post, access.FromContext(ctx), s.now()))
	if err != nil {
		return nil, fmt.Errorf("error listing related posts: %w", err)
	}

	return newExpander(s.users, s.media).posts(ctx, list.Items, expand), nil
}

func (s *postService) Create(ctx context.Context, input models.PostInput) (models.Post, error) {
	claim, err := authorizeWrite(ctx, access.Posts, access.Create)
	if err != nil {
		return models.Post{}, err
	}
	if err := s.validator.Validate(ctx, input, validators.OnCreate); err != nil {
		return models.Post{}, err
	}

	authors := []string{claim.SubjectID}
	if input.Authors != nil {
		authors = *input.Authors
	}

	post := models.Post{
		ID:          s.ids.Generate(),
		Name:        deref(input.Name),
		Title:       deref(input.Title),
		Summary:     deref(input.Summary),
		Content:     deref(input.Content),
		Category:    deref(input.Category),
		Public:      deref(input.Public),
		Listed:      deref(input.Listed),
		Featured:    deref(input.Featured),
		PublishDate: publishDate(input.PublishDate),
		Authors:     models.References[models.UserSummary](authors),
		Meta:        auditMeta(claim, input.Comment),
	}
	if input.Tags != nil {
		post.Tags = *input.Tags
	}
	if input.FeaturedMedia != nil && *input.FeaturedMedia != "" {
		ref := models.Reference[models.Media](*input.FeaturedMedia)
		post.FeaturedMedia = &ref
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("error creating post: %w", err)
	}
	return created, nil
}

func (s *postService) Update(ctx context.Context, id string, input models.PostInput) (models.Post, error) {
	claim, err := authorizeWrite(ctx, access.Posts, access.Update)
	if err != nil {
		return models.Post{}, err
	}
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Post{}, err
	}

	changes := models.PostChanges{
		Name:          input.Name,
		Title:         input.Title,
		Summary:       input.Summary,
		Content:       input.Content,
		Category:      input.Category,
		Tags:          input.Tags,
		Public:        input.Public,
		Listed:        input.Listed,
		Featured:      input.Featured,
		Authors:       input.Authors,
		FeaturedMedia: input.FeaturedMedia,
		Comment:       input.Comment,
		LastEditUser:  claim.SubjectID,
	}
	if input.PublishDate != nil {
		if *input.PublishDate == "" {
			changes.ClearPublishDate = true
		} else {
			changes.PublishDate = publishDate(input.PublishDate)
		}
	}

	updated, err := s.posts.Update(ctx, id, changes)
	if err != nil {
		return models.Post{}, fmt.Errorf("error updating post %s: %w", id, err)
	}
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if _, err := authorizeWrite(ctx, access.Posts, access.Delete); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting post %s: %w", id, err)
	}
	return nil
}

// authorizeWrite checks op against the caller in ctx and returns its claim.
func authorizeWrite(ctx context.Context, resource access.Resource, op access.Operation) (models.Claim, error) {
	caller := access.FromContext(ctx)
	if err := access.Authorize(caller, resource, op); err != nil {
		return models.Claim{}, err
	}
	return caller.Require()
}

// auditMeta stamps a new record with its author.
func auditMeta(claim models.Claim, comment *string) *models.Meta {
	return &models.Meta{
		CreationUser: models.Reference[models.UserSummary](claim.SubjectID),
		LastEditUser: models.Reference[models.UserSummary](claim.SubjectID),
		Comment:      deref(comment),
	}
}

// publishDate reads a validated timestamp. "" and nil mean no date.
func publishDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	t, ok := coerce.Date(*raw).(time.Time)
	if !ok {
		return nil
	}
	return &t
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
