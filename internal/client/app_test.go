// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/repraze/repraze-apps-sub001/internal/adapter"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/mock"
	"github.com/repraze/repraze-apps-sub001/models"
)

func newTestApp(t *testing.T) (*App, *mock.MockServerAdapter, *bytes.Buffer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	out := &bytes.Buffer{}

	app, err := NewApp(m, out, logger.Nop())
	require.NoError(t, err)
	return app, m, out
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewApp_NilAdapter(t *testing.T) {
	_, err := NewApp(nil, &bytes.Buffer{}, logger.Nop())
	assert.Error(t, err)
}

func TestRun_NoCommand(t *testing.T) {
	app, _, out := newTestApp(t)

	err := app.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCommand)
	assert.Contains(t, out.String(), "usage:")
	assert.Contains(t, out.String(), "create-post")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_Version(t *testing.T) {
	app, m, out := newTestApp(t)
	m.EXPECT().Version(gomock.Any()).Return(models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc"), nil)

	require.NoError(t, app.Run(context.Background(), []string{"version"}))
	assert.JSONEq(t, `{"version":"1.0.0","date":"2026-01-01","commit":"abc"}`, out.String())
}

func TestRun_Login(t *testing.T) {
	app, m, out := newTestApp(t)
	m.EXPECT().
		Login(gomock.Any(), models.Credentials{Username: "john", Password: "hunter22"}).
		Return(models.LoginResponse{Token: "t0k3n"}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"login", "-username", "john", "-password", "hunter22"}))

	var got models.LoginResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "t0k3n", got.Token)
}

func TestRun_LoginMissingPassword(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"login", "-username", "john"})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestRun_BadFlag(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"login", "-nope"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRun_AdapterErrorIsWrapped(t *testing.T) {
	app, m, out := newTestApp(t)
	m.EXPECT().Me(gomock.Any()).Return(models.Claim{}, adapter.ErrForbidden)

	err := app.Run(context.Background(), []string{"me"})
	require.ErrorIs(t, err, adapter.ErrForbidden)
	assert.Contains(t, err.Error(), "me: ")
	assert.Empty(t, out.String())
}

func TestRun_Posts(t *testing.T) {
	app, m, out := newTestApp(t)

	want := url.Values{
		"filter[tags]": {"news"},
		"sort":         {"-featured", "title"},
		"search":       {"a=b"},
	}
	m.EXPECT().ListPosts(gomock.Any(), want).Return(adapter.Page[models.Post]{
		Items: []models.Post{{ID: "p1", Name: "hello"}},
		Meta:  models.ListMeta{Total: 1},
	}, nil)

	args := []string{"posts", "filter[tags]=news", "sort=-featured", "sort=title", "search=a=b"}
	require.NoError(t, app.Run(context.Background(), args))

	var got struct {
		Data []models.Post   `json:"data"`
		Meta models.ListMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Data, 1)
	assert.Equal(t, "p1", got.Data[0].ID)
	assert.Equal(t, int64(1), got.Meta.Total)
}

func TestRun_PostsEmptyPage(t *testing.T) {
	app, m, out := newTestApp(t)
	m.EXPECT().ListPosts(gomock.Any(), url.Values{}).Return(adapter.Page[models.Post]{}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"posts"}))
	assert.Contains(t, out.String(), `"data": []`)
}

func TestRun_PostsRejectsBareWord(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"posts", "news"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRun_Post(t *testing.T) {
	app, m, _ := newTestApp(t)
	m.EXPECT().
		GetPost(gomock.Any(), "hello", []string{"authors", "featured_media"}).
		Return(models.Post{ID: "p1", Name: "hello"}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"post", "-expand", "authors, featured_media", "hello"}))
}

func TestRun_PostWithoutExpand(t *testing.T) {
	app, m, _ := newTestApp(t)
	m.EXPECT().GetPost(gomock.Any(), "hello", gomock.Nil()).Return(models.Post{ID: "p1"}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"post", "hello"}))
}

func TestRun_PostArguments(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.ErrorIs(t, app.Run(context.Background(), []string{"post"}), ErrMissingArgument)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"post", "a", "b"}), ErrInvalidArgument)
}

func TestRun_CreatePostSendsOnlyGivenFlags(t *testing.T) {
	app, m, _ := newTestApp(t)
	m.EXPECT().
		CreatePost(gomock.Any(), models.PostInput{
			Name:   ptr("hello"),
			Title:  ptr("Hello"),
			Tags:   ptr([]string{"news", "tech"}),
			Public: ptr(true),
		}).
		Return(models.Post{ID: "p1"}, nil)

	args := []string{"create-post", "-name", "hello", "-title", "Hello", "-tags", "news, tech", "-public"}
	require.NoError(t, app.Run(context.Background(), args))
}

func TestRun_DeletePost(t *testing.T) {
	app, m, out := newTestApp(t)
	m.EXPECT().DeletePost(gomock.Any(), "p1").Return(nil)

	require.NoError(t, app.Run(context.Background(), []string{"delete-post", "p1"}))
	assert.Contains(t, out.String(), "deleted p1")
}

func TestRun_CreateUser(t *testing.T) {
	app, m, _ := newTestApp(t)
	m.EXPECT().
		CreateUser(gomock.Any(), models.UserInput{
			Username:    ptr("jane"),
			Password:    ptr("s3cret!!"),
			DisplayName: ptr("Jane"),
		}).
		Return(models.User{ID: "u2", Username: "jane"}, nil)

	args := []string{"create-user", "-username", "jane", "-password", "s3cret!!", "-display-name", "Jane"}
	require.NoError(t, app.Run(context.Background(), args))
}

func TestRun_ChangePassword(t *testing.T) {
	app, m, _ := newTestApp(t)
	m.EXPECT().ChangePassword(gomock.Any(), "u1", "n3w-pass").Return(nil)

	require.NoError(t, app.Run(context.Background(), []string{"passwd", "-password", "n3w-pass", "u1"}))
}

func TestRun_ChangePasswordRequiresPassword(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"passwd", "u1"})
	assert.ErrorIs(t, err, ErrMissingArgument)
}
