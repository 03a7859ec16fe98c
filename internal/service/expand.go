// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/models"
)

// loaderWait is how long a loader collects keys before issuing one batch.
const loaderWait = 2 * time.Millisecond

// expander resolves relations for a single request. Its loaders cache by id,
// so it must not outlive the request that created it.
type expander struct {
	userLoader  *dataloader.Loader
	mediaLoader *dataloader.Loader
}

func newExpander(users store.UserRepository, media store.MediaRepository) *expander {
	return &expander{
		userLoader:  dataloader.NewBatchedLoader(userBatch(users), dataloader.WithWait(loaderWait)),
		mediaLoader: dataloader.NewBatchedLoader(mediaBatch(media), dataloader.WithWait(loaderWait)),
	}
}

func userBatch(repo store.UserRepository) dataloader.BatchFunc {
	return func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		users, err := repo.GetByIDs(ctx, keys.Keys())
		if err != nil {
			return failedBatch(len(keys), err)
		}

		byID := make(map[string]models.UserSummary, len(users))
		for _, u := range users {
			byID[u.ID] = u.Summary()
		}
		return orderedBatch(keys, byID)
	}
}

func mediaBatch(repo store.MediaRepository) dataloader.BatchFunc {
	return func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		items, err := repo.GetByIDs(ctx, keys.Keys())
		if err != nil {
			return failedBatch(len(keys), err)
		}

		byID := make(map[string]models.Media, len(items))
		for _, m := range items {
			// embedded media never carries its own audit data
			m.Meta = nil
			byID[m.ID] = m
		}
		return orderedBatch(keys, byID)
	}
}

// orderedBatch returns one result per key, in key order. Unknown keys resolve
// to nil data.
func orderedBatch[T any](keys dataloader.Keys, byID map[string]T) []*dataloader.Result {
	results := make([]*dataloader.Result, len(keys))
	for i, key := range keys {
		if v, ok := byID[key.String()]; ok {
			results[i] = &dataloader.Result{Data: v}
		} else {
			results[i] = &dataloader.Result{Data: nil}
		}
	}
	return results
}

func failedBatch(n int, err error) []*dataloader.Result {
	results := make([]*dataloader.Result, n)
	for i := range results {
		results[i] = &dataloader.Result{Error: err}
	}
	return results
}

// resolver finishes a lookup started by [loadRef].
type resolver[T models.Identified] func() models.Ref[T]

// loadRef starts resolving ref without waiting. A failed or missing lookup
// resolves to the bare reference.
func loadRef[T models.Identified](ctx context.Context, loader *dataloader.Loader, ref models.Ref[T]) resolver[T] {
	if ref.IsZero() {
		return func() models.Ref[T] { return ref }
	}

	thunk := loader.Load(ctx, dataloader.StringKey(ref.ID()))
	return func() models.Ref[T] {
		data, err := thunk()
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "loadRef").
				Str("id", ref.ID()).
				Msg("relation lookup failed, keeping reference")
			return ref.Collapse()
		}

		v, ok := data.(T)
		if !ok {
			logger.FromContext(ctx).Debug().
				Str("func", "loadRef").
				Str("id", ref.ID()).
				Msg("related record not found, keeping reference")
			return ref.Collapse()
		}
		return models.Expanded(v)
	}
}

// loadMeta starts resolving the audit users of meta.
func (e *expander) loadMeta(ctx context.Context, meta *models.Meta) func() *models.Meta {
	if meta == nil {
		return func() *models.Meta { return nil }
	}

	creation := loadRef(ctx, e.userLoader, meta.CreationUser)
	lastEdit := loadRef(ctx, e.userLoader, meta.LastEditUser)
	return func() *models.Meta {
		out := *meta
		out.CreationUser = creation()
		out.LastEditUser = lastEdit()
		return &out
	}
}

func (e *expander) loadFeatured(ctx context.Context, ref *models.Ref[models.Media]) func() *models.Ref[models.Media] {
	if ref == nil {
		return func() *models.Ref[models.Media] { return nil }
	}

	resolve := loadRef(ctx, e.mediaLoader, *ref)
	anonymous := !access.FromContext(ctx).IsAuthenticated()
	return func() *models.Ref[models.Media] {
		out := resolve()
		// anonymous callers only see public media embedded
		if m, ok := out.Value(); ok && anonymous && !m.Public {
			out = out.Collapse()
		}
		return &out
	}
}

// posts expands the requested relations of every post. Every lookup of the
// batch is started before any is awaited. Meta is dropped unless requested.
func (e *expander) posts(ctx context.Context, posts []models.Post, expand query.Expand) []models.Post {
	type pending struct {
		authors  []resolver[models.UserSummary]
		featured func() *models.Ref[models.Media]
		meta     func() *models.Meta
	}

	work := make([]pending, len(posts))
	for i, p := range posts {
		if expand.Has(query.ExpandAuthors) {
			work[i].authors = make([]resolver[models.UserSummary], len(p.Authors))
			for j, a := range p.Authors {
				work[i].authors[j] = loadRef(ctx, e.userLoader, a)
			}
		}
		if expand.Has(query.ExpandFeaturedMedia) {
			work[i].featured = e.loadFeatured(ctx, p.FeaturedMedia)
		}
		if expand.Has(query.ExpandMeta) {
			work[i].meta = e.loadMeta(ctx, p.Meta)
		}
	}

	out := make([]models.Post, len(posts))
	for i, p := range posts {
		if work[i].authors != nil {
			authors := make([]models.Ref[models.UserSummary], len(work[i].authors))
			for j, resolve := range work[i].authors {
				authors[j] = resolve()
			}
			p.Authors = authors
		}
		if work[i].featured != nil {
			p.FeaturedMedia = work[i].featured()
		}
		if work[i].meta != nil {
			p.Meta = work[i].meta()
		} else {
			p.Meta = nil
		}
		out[i] = p
	}
	return out
}

func (e *expander) pages(ctx context.Context, pages []models.Page, expand query.Expand) []models.Page {
	type pending struct {
		featured func() *models.Ref[models.Media]
		meta     func() *models.Meta
	}

	work := make([]pending, len(pages))
	for i, p := range pages {
		if expand.Has(query.ExpandFeaturedMedia) {
			work[i].featured = e.loadFeatured(ctx, p.FeaturedMedia)
		}
		if expand.Has(query.ExpandMeta) {
			work[i].meta = e.loadMeta(ctx, p.Meta)
		}
	}

	out := make([]models.Page, len(pages))
	for i, p := range pages {
		if work[i].featured != nil {
			p.FeaturedMedia = work[i].featured()
		}
		if work[i].meta != nil {
			p.Meta = work[i].meta()
		} else {
			p.Meta = nil
		}
		out[i] = p
	}
	return out
}

func (e *expander) media(ctx context.Context, items []models.Media, expand query.Expand) []models.Media {
	metas := make([]func() *models.Meta, len(items))
	if expand.Has(query.ExpandMeta) {
		for i, m := range items {
			metas[i] = e.loadMeta(ctx, m.Meta)
		}
	}

	out := make([]models.Media, len(items))
	for i, m := range items {
		if metas[i] != nil {
			m.Meta = metas[i]()
		} else {
			m.Meta = nil
		}
		out[i] = m
	}
	return out
}
