// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/mock"
	"github.com/repraze/repraze-apps-sub001/internal/service"
	"github.com/repraze/repraze-apps-sub001/models"
)

const goodToken = "good-token"

var testClaim = models.Claim{SubjectID: "u1", SubjectName: "John"}

type testServices struct {
	auth    *mock.MockAuthService
	posts   *mock.MockPostService
	pages   *mock.MockPageService
	media   *mock.MockMediaService
	users   *mock.MockUserService
	appInfo *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testServices{
		auth:    mock.NewMockAuthService(ctrl),
		posts:   mock.NewMockPostService(ctrl),
		pages:   mock.NewMockPageService(ctrl),
		media:   mock.NewMockMediaService(ctrl),
		users:   mock.NewMockUserService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	m.auth.EXPECT().ParseToken(gomock.Any(), goodToken).Return(testClaim, nil).AnyTimes()

	h := NewHandler(&service.Services{
		AuthService:    m.auth,
		PostService:    m.posts,
		PageService:    m.pages,
		MediaService:   m.media,
		UserService:    m.users,
		AppInfoService: m.appInfo,
	}, logger.Nop())
	return h, m
}

// serve sends a request through the full router. A non-empty token is sent
// as a bearer token.
func serve(h *Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// envelope is the decoded {data, meta} body.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta"`
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func message(t *testing.T, rr *httptest.ResponseRecorder) models.MessageResponse {
	t.Helper()
	return decode[models.MessageResponse](t, rr.Body.Bytes())
}

func ptr[T any](v T) *T { return &v }

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func record(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}
