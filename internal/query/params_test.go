// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
	"github.com/repraze/repraze-apps-sub001/models"
)

var (
	anon = access.Anonymous()
	user = access.Authenticated(models.Claim{SubjectID: "u-1", SubjectName: "Ada"})
)

func ptr[T any](v T) *T { return &v }

func mustParse(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return v
}

func requireQueryError(t *testing.T, err error, field string) {
	t.Helper()
	require.ErrorIs(t, err, validators.ErrValidation)
	var vErr *validators.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, field, vErr.Field)
}

// ── pagination ──

func TestPage_Defaults(t *testing.T) {
	p, err := NewPostParams(url.Values{}, user)
	require.NoError(t, err)
	assert.Equal(t, Page{Limit: 25, Skip: 0}, p.Page)
}

func TestPage_LimitIsClamped(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "limit=1000&skip=40"), user)
	require.NoError(t, err)
	assert.Equal(t, Page{Limit: 100, Skip: 40}, p.Page)
}

func TestPage_OversizedNumbersSaturate(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "limit=99999999999999999999&skip=99999999999999999999"), anon)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, p.Page.Limit)
	assert.Equal(t, math.MaxInt, p.Page.Skip)
}

func TestPage_Invalid(t *testing.T) {
	tests := []struct {
		query string
		field string
	}{
		{"limit=0", "query.limit"},
		{"limit=-5", "query.limit"},
		{"limit=abc", "query.limit"},
		{"skip=-1", "query.skip"},
		{"skip=1.5", "query.skip"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, err := NewPostParams(mustParse(t, tt.query), user)
			requireQueryError(t, err, tt.field)

			_, err = NewPostParams(mustParse(t, tt.query), anon)
			requireQueryError(t, err, tt.field)
		})
	}
}

// TestPage_RepeatedKeyLastWins verifies that repeated scalar keys resolve to
// the last value.
func TestPage_RepeatedKeyLastWins(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "limit=10&limit=20"), user)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Page.Limit)
}

// ── sort ──

func TestSort(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "sort=-publish_date,+title"), user)
	require.NoError(t, err)
	assert.Equal(t, Sorts{{"publish_date", Desc}, {"title", Asc}}, p.Sort)

	p, err = NewPostParams(mustParse(t, "sort=title&sort=-title&sort=name"), user)
	require.NoError(t, err)
	assert.Equal(t, Sorts{{"title", Asc}, {"name", Asc}}, p.Sort)

	p, err = NewPostParams(url.Values{}, user)
	require.NoError(t, err)
	assert.Equal(t, Posts.DefaultSort, p.Sort)

	_, err = NewPostParams(mustParse(t, "sort=password"), user)
	requireQueryError(t, err, "query.sort")
}

func TestSorts_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Posts.DefaultSort)
	require.NoError(t, err)
	assert.JSONEq(t, `["-featured","-publish_date"]`, string(b))
}

// ── expand ──

func TestExpand(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "expand=authors,meta,authors"), user)
	require.NoError(t, err)
	assert.Equal(t, Expand{ExpandAuthors, ExpandMeta}, p.Expand)

	p, err = NewPostParams(mustParse(t, "expand=authors,meta"), anon)
	require.NoError(t, err)
	assert.Equal(t, Expand{ExpandAuthors}, p.Expand)
	assert.False(t, p.Expand.Has(ExpandMeta))

	_, err = NewPageParams(mustParse(t, "expand=authors"), user)
	requireQueryError(t, err, "query.expand")

	p, err = NewPostParams(url.Values{}, user)
	require.NoError(t, err)
	assert.Nil(t, p.Expand)
}

func TestParseExpand(t *testing.T) {
	e, err := ParseExpand(Media, mustParse(t, "expand=meta"), user)
	require.NoError(t, err)
	assert.True(t, e.Has(ExpandMeta))

	_, err = ParseExpand(Users, mustParse(t, "expand=meta"), user)
	requireQueryError(t, err, "query.expand")
}

// ── posts ──

func TestNewPostParams_AnonymousDefaults(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "tags=news,tech&published=false&public=false&search=x&sort=title"), anon)
	require.NoError(t, err)

	assert.Equal(t, AnonymousPostFilter(), p.Filter)
	assert.Equal(t, Posts.DefaultSort, p.Sort)

	spec := p.Spec()
	assert.Empty(t, spec.Search)
	assert.Equal(t, And{
		And{Eq{"public", true}, Lt{"publish_date", p.Now}},
		Eq{"listed", true},
	}, spec.Where)
}

func TestNewPostParams_AuthenticatedFilters(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "featured=1&listed=false&category=news&tags=a,%20b&search=%20hello%20"), user)
	require.NoError(t, err)

	assert.Equal(t, PostFilter{
		Listed:   ptr(false),
		Featured: ptr(true),
		Category: ptr("news"),
		Tags:     []string{"a", "b"},
		Search:   "hello",
	}, p.Filter)

	spec := p.Spec()
	assert.Equal(t, And{
		Eq{"listed", false},
		Eq{"featured", true},
		Eq{"category", "news"},
		ContainsAll{"tags", []string{"a", "b"}},
	}, spec.Where)
	assert.Equal(t, "hello", spec.Search)
	assert.Equal(t, []string{"title", "name"}, spec.SearchFields)
	require.NotNil(t, spec.Page)
	assert.Equal(t, DefaultPage(), *spec.Page)
}

func TestNewPostParams_EmptyFlagIsTrue(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "featured"), user)
	require.NoError(t, err)
	assert.Equal(t, ptr(true), p.Filter.Featured)
}

func TestNewPostParams_InvalidFlag(t *testing.T) {
	_, err := NewPostParams(mustParse(t, "listed=yes&limit=0"), user)
	requireQueryError(t, err, "query.listed")
}

// TestNewPostParams_PublishedTakesPrecedence verifies that published subsumes
// a separately given public flag.
func TestNewPostParams_PublishedTakesPrecedence(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "public=true&published=false"), user)
	require.NoError(t, err)

	assert.Nil(t, p.Filter.Public)
	assert.Equal(t, Or{
		Eq{"public", false},
		IsNull{"publish_date"},
		Gte{"publish_date", p.Now},
	}, p.Spec().Where)

	p, err = NewPostParams(mustParse(t, "public=false"), user)
	require.NoError(t, err)
	assert.Equal(t, Eq{"public", false}, p.Spec().Where)
}

func TestNewPostParams_SearchTooLong(t *testing.T) {
	long := make([]byte, 257)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewPostParams(url.Values{"search": {string(long)}}, user)
	requireQueryError(t, err, "query.search")
}

func TestNewPostParams_BlankSearchIgnored(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "search=%20%20"), user)
	require.NoError(t, err)
	assert.Empty(t, p.Spec().Search)
	assert.Nil(t, p.Spec().Where)
}

func TestPostParams_MarshalJSON(t *testing.T) {
	p, err := NewPostParams(mustParse(t, "limit=5"), anon)
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"filter": {"published": true, "listed": true},
		"sort": ["-featured", "-publish_date"],
		"page": {"limit": 5, "skip": 0}
	}`, string(b))
}

func TestRelatedPosts(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	post := models.Post{ID: "p-1", Tags: []string{"a", "b"}}

	spec := RelatedPosts(post, user, now)
	assert.Equal(t, And{
		Overlaps{"tags", []string{"a", "b"}},
		Eq{"listed", true},
		NotEq{"id", "p-1"},
	}, spec.Where)
	assert.Equal(t, Posts.DefaultSort, spec.Sort)
	assert.Equal(t, &Page{Limit: 5}, spec.Page)

	spec = RelatedPosts(post, anon, now)
	where, ok := spec.Where.(And)
	require.True(t, ok)
	require.Len(t, where, 4)
	assert.Equal(t, Published(true, now), where[3])
}

// ── pages, media, users ──

func TestNewPageParams(t *testing.T) {
	p, err := NewPageParams(mustParse(t, "public=false&search=about"), anon)
	require.NoError(t, err)
	assert.Equal(t, Eq{"public", true}, p.Spec().Where)
	assert.Empty(t, p.Spec().Search)
	assert.Equal(t, Sorts{{"title", Asc}}, p.Sort)

	p, err = NewPageParams(mustParse(t, "public=false&search=about"), user)
	require.NoError(t, err)
	assert.Equal(t, Eq{"public", false}, p.Spec().Where)
	assert.Equal(t, "about", p.Spec().Search)
}

func TestNewMediaAndUserParams_RequireAuthentication(t *testing.T) {
	_, err := NewMediaParams(url.Values{}, anon)
	assert.ErrorIs(t, err, access.ErrAuthenticationRequired)

	_, err = NewUserParams(url.Values{}, anon)
	assert.ErrorIs(t, err, access.ErrAuthenticationRequired)

	m, err := NewMediaParams(url.Values{}, user)
	require.NoError(t, err)
	assert.Equal(t, Sorts{{"created_at", Desc}}, m.Sort)
	assert.Nil(t, m.Spec().Where)

	u, err := NewUserParams(mustParse(t, "search=ada&sort=-created_at"), user)
	require.NoError(t, err)
	assert.Equal(t, Sorts{{"created_at", Desc}}, u.Sort)
	assert.Equal(t, []string{"username", "display_name"}, u.Spec().SearchFields)
}

func TestReadPredicate(t *testing.T) {
	now := time.Now()

	assert.Nil(t, Posts.ReadPredicate(user, now))
	assert.Equal(t, Published(true, now), Posts.ReadPredicate(anon, now))
	assert.Equal(t, Eq{"public", true}, Pages.ReadPredicate(anon, now))
	assert.Nil(t, Media.ReadPredicate(anon, now))
}

func TestAllOf(t *testing.T) {
	assert.Nil(t, AllOf())
	assert.Nil(t, AllOf(nil, nil))
	assert.Equal(t, Eq{"a", 1}, AllOf(nil, Eq{"a", 1}))
	assert.Equal(t, And{Eq{"a", 1}, IsNull{"b"}}, AllOf(Eq{"a", 1}, nil, IsNull{"b"}))
}
