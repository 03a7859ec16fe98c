// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/repraze/repraze-apps-sub001/models"
)

func TestInit_Health(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rr.Body.String())
}

func TestInit_Version(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.4.0", "2026-01-02", ""))

	rr := serve(h, http.MethodGet, "/version", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"version":"1.4.0","date":"2026-01-02","commit":"N/A"}}`, rr.Body.String())
}

func TestInit_ProtectedRoutes_RejectAnonymous(t *testing.T) {
	h, _ := newTestHandler(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/auth/token/refresh"},
		{http.MethodPost, "/posts"},
		{http.MethodPatch, "/posts/p1"},
		{http.MethodDelete, "/posts/p1"},
		{http.MethodPost, "/pages"},
		{http.MethodPatch, "/pages/about"},
		{http.MethodDelete, "/pages/about"},
		{http.MethodGet, "/media"},
		{http.MethodGet, "/media/m1"},
		{http.MethodPost, "/media"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/u1"},
		{http.MethodPut, "/users/u1/password"},
		{http.MethodDelete, "/users/u1"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rr := serve(h, route.method, route.path, `{}`, "")

			assert.Equal(t, http.StatusForbidden, rr.Code)
			assert.Equal(t, "Authentication required", message(t, rr).Message)
		})
	}
}

func TestInit_UnknownRoutesAndMethods_Return404(t *testing.T) {
	h, _ := newTestHandler(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/unknown"},
		{http.MethodGet, "/auth/register"},
		{http.MethodPost, "/health"},
		{http.MethodPut, "/version"},
		{http.MethodDelete, "/posts"},
		{http.MethodPut, "/posts/p1"},
		{http.MethodPost, "/posts/p1/related"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rr := serve(h, route.method, route.path, "", "")
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestInit_TraceIDHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, http.MethodGet, "/health", "", "")
	require.NotEmpty(t, rr.Header().Get(traceIDHeader))

	req := newRequest(http.MethodGet, "/health")
	req.Header.Set(traceIDHeader, "trace-123")
	rr = record(h.Init(), req)
	assert.Equal(t, "trace-123", rr.Header().Get(traceIDHeader))

	req = newRequest(http.MethodGet, "/health")
	req.Header.Set(requestIDHeader, "req-456")
	rr = record(h.Init(), req)
	assert.Equal(t, "req-456", rr.Header().Get(traceIDHeader))
}
