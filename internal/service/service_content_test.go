// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/models"
)

func newTestPageService(t *testing.T) (*pageService, testStorages) {
	t.Helper()
	storages, mocks := newTestStorages(gomock.NewController(t))

	svc := NewPageService(storages, &sequentialIDs{}, testLogger).(*pageService)
	svc.now = func() time.Time { return fixedNow }
	return svc, mocks
}

func newTestMediaService(t *testing.T) (MediaService, testStorages) {
	t.Helper()
	storages, mocks := newTestStorages(gomock.NewController(t))
	return NewMediaService(storages, &sequentialIDs{}, testLogger), mocks
}

// ── Pages ────────────────────────────────────────────────────────────────────

func TestPageService_Get_AnonymousSeesPublicOnly(t *testing.T) {
	svc, m := newTestPageService(t)

	m.pages.EXPECT().GetByID(anonymous, "about", query.Eq{Field: "public", Value: true}).
		Return(models.Page{ID: "about", Public: true, Meta: testMeta()}, nil)

	page, err := svc.Get(anonymous, "about", nil)
	require.NoError(t, err)
	assert.Nil(t, page.Meta)
}

func TestPageService_List_ExpandsFeaturedMedia(t *testing.T) {
	svc, m := newTestPageService(t)

	params, err := query.NewPageParams(url.Values{"expand": {"featured_media"}}, access.Anonymous())
	require.NoError(t, err)

	cover := models.Reference[models.Media]("m1")
	m.pages.EXPECT().List(gomock.Any(), params.Spec()).Return(models.List[models.Page]{
		Items: []models.Page{{ID: "a", FeaturedMedia: &cover}, {ID: "b"}},
		Total: 2,
	}, nil)
	m.media.EXPECT().GetByIDs(gomock.Any(), []string{"m1"}).
		Return([]models.Media{{ID: "m1", Filename: "cover.png", Public: true}}, nil)

	list, err := svc.List(anonymous, params)
	require.NoError(t, err)

	media, ok := list.Items[0].FeaturedMedia.Value()
	require.True(t, ok)
	assert.Equal(t, "cover.png", media.Filename)
	assert.Nil(t, list.Items[1].FeaturedMedia)
}

func TestPageService_List_PrivateFeaturedMediaStaysReference(t *testing.T) {
	tests := []struct {
		name         string
		ctx          context.Context
		caller       access.Caller
		wantExpanded bool
	}{
		{name: "anonymous", ctx: anonymous, caller: access.Anonymous(), wantExpanded: false},
		{name: "signed in", ctx: signedIn, caller: access.Authenticated(testClaim), wantExpanded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestPageService(t)

			params, err := query.NewPageParams(url.Values{"expand": {"featured_media"}}, tt.caller)
			require.NoError(t, err)

			cover := models.Reference[models.Media]("m1")
			m.pages.EXPECT().List(gomock.Any(), params.Spec()).Return(models.List[models.Page]{
				Items: []models.Page{{ID: "a", FeaturedMedia: &cover}},
				Total: 1,
			}, nil)
			m.media.EXPECT().GetByIDs(gomock.Any(), []string{"m1"}).
				Return([]models.Media{{ID: "m1", Filename: "draft.png", Public: false}}, nil)

			list, err := svc.List(tt.ctx, params)
			require.NoError(t, err)

			featured := list.Items[0].FeaturedMedia
			require.NotNil(t, featured)
			assert.Equal(t, "m1", featured.ID())
			assert.Equal(t, tt.wantExpanded, featured.IsExpanded())
		})
	}
}

func TestPageService_CreateAndUpdate(t *testing.T) {
	svc, m := newTestPageService(t)

	m.pages.EXPECT().Create(signedIn, gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Page) (models.Page, error) {
			assert.Equal(t, "id-1", p.ID)
			assert.Equal(t, "m9", p.FeaturedMedia.ID())
			assert.Equal(t, "u1", p.Meta.CreationUser.ID())
			return p, nil
		})
	_, err := svc.Create(signedIn, models.PageInput{Name: ptr("about"), Title: ptr("About"), FeaturedMedia: ptr("m9")})
	require.NoError(t, err)

	m.pages.EXPECT().Update(signedIn, "id-1", models.PageChanges{Public: ptr(true), LastEditUser: "u1"}).
		Return(models.Page{ID: "id-1", Public: true}, nil)
	page, err := svc.Update(signedIn, "id-1", models.PageInput{Public: ptr(true)})
	require.NoError(t, err)
	assert.True(t, page.Public)

	_, err = svc.Create(anonymous, models.PageInput{Name: ptr("about"), Title: ptr("About")})
	assert.ErrorIs(t, err, access.ErrAuthenticationRequired)
}

// ── Media ────────────────────────────────────────────────────────────────────

func TestMediaService_RequiresAuthentication(t *testing.T) {
	svc, _ := newTestMediaService(t)

	_, err := svc.Get(anonymous, "m1", nil)
	assert.ErrorIs(t, err, access.ErrAuthenticationRequired)

	_, err = query.NewMediaParams(url.Values{}, access.Anonymous())
	assert.ErrorIs(t, err, access.ErrAuthenticationRequired)
}

func TestMediaService_Get_ExpandsMeta(t *testing.T) {
	svc, m := newTestMediaService(t)

	m.media.EXPECT().GetByID(signedIn, "m1").Return(models.Media{ID: "m1", Meta: testMeta()}, nil)
	m.users.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).DoAndReturn(usersByID(john, jane)).MinTimes(1)

	item, err := svc.Get(signedIn, "m1", query.Expand{query.ExpandMeta})
	require.NoError(t, err)
	require.NotNil(t, item.Meta)

	creator, ok := item.Meta.CreationUser.Value()
	require.True(t, ok)
	assert.Equal(t, "john", creator.Username)
	editor, ok := item.Meta.LastEditUser.Value()
	require.True(t, ok)
	assert.Equal(t, "jane", editor.Username)
	assert.Equal(t, "draft", item.Meta.Comment)
}

func TestMediaService_CreateAndDelete(t *testing.T) {
	svc, m := newTestMediaService(t)

	m.media.EXPECT().Create(signedIn, gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.Media) (models.Media, error) {
			assert.Equal(t, "image/png", item.ContentType)
			assert.EqualValues(t, 2048, item.Size)
			return item, nil
		})
	_, err := svc.Create(signedIn, models.MediaInput{
		Name:        ptr("cover"),
		Title:       ptr("Cover"),
		Filename:    ptr("cover.png"),
		ContentType: ptr("image/png"),
		Size:        ptr(int64(2048)),
	})
	require.NoError(t, err)

	m.media.EXPECT().Delete(signedIn, "m1").Return(store.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(signedIn, "m1"), store.ErrNotFound)
}
