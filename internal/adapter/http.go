// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/repraze/repraze-apps-sub001/internal/config"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// envelope mirrors the {data, meta} body written by the server.
type envelope[T any] struct {
	Data T               `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// It normalises the base URL from cfg.ServerURL and applies the request
// timeout to every call.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. It POSTs to /auth/login/basic.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.LoginResponse, error) {
	login, err := do[models.LoginResponse](h.client.R().SetContext(ctx).SetBody(credentials), resty.MethodPost, "/auth/login/basic")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login: %w", err)
	}

	h.SetToken(login.Token)
	return login, nil
}

// Me implements [ServerAdapter].
func (h *httpServerAdapter) Me(ctx context.Context) (models.Claim, error) {
	claim, err := do[models.Claim](h.authedRequest(ctx), resty.MethodGet, "/auth/me")
	if err != nil {
		return models.Claim{}, fmt.Errorf("me: %w", err)
	}
	return claim, nil
}

// RefreshToken implements [ServerAdapter].
func (h *httpServerAdapter) RefreshToken(ctx context.Context) (models.LoginResponse, error) {
	refreshed, err := do[models.LoginResponse](h.authedRequest(ctx), resty.MethodPost, "/auth/token/refresh")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("refresh token: %w", err)
	}

	h.SetToken(refreshed.Token)
	return refreshed, nil
}

// Version implements [ServerAdapter].
func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	info, err := do[models.AppBuildInfo](h.client.R().SetContext(ctx), resty.MethodGet, "/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version: %w", err)
	}
	return info, nil
}

// ListPosts implements [ServerAdapter].
func (h *httpServerAdapter) ListPosts(ctx context.Context, params url.Values) (Page[models.Post], error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(params).
		Get("/posts/")
	if err != nil {
		return Page[models.Post]{}, fmt.Errorf("list posts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return Page[models.Post]{}, fmt.Errorf("list posts: %w", err)
	}

	var body envelope[[]models.Post]
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return Page[models.Post]{}, fmt.Errorf("decode list posts response: %w", err)
	}

	page := Page[models.Post]{Items: body.Data}
	if len(body.Meta) > 0 {
		if err = json.Unmarshal(body.Meta, &page.Meta); err != nil {
			return Page[models.Post]{}, fmt.Errorf("decode list posts meta: %w", err)
		}
	}

	h.logger.Debug().Int("items", len(page.Items)).Int64("total", page.Meta.Total).Msg("posts listed")
	return page, nil
}

// GetPost implements [ServerAdapter].
func (h *httpServerAdapter) GetPost(ctx context.Context, id string, expand []string) (models.Post, error) {
	req := h.authedRequest(ctx).SetPathParam("id", id)
	if len(expand) > 0 {
		req.SetQueryParam("expand", strings.Join(expand, ","))
	}

	post, err := do[models.Post](req, resty.MethodGet, "/posts/{id}")
	if err != nil {
		return models.Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// CreatePost implements [ServerAdapter].
func (h *httpServerAdapter) CreatePost(ctx context.Context, input models.PostInput) (models.Post, error) {
	post, err := do[models.Post](h.authedRequest(ctx).SetBody(input), resty.MethodPost, "/posts/")
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost implements [ServerAdapter].
func (h *httpServerAdapter) UpdatePost(ctx context.Context, id string, input models.PostInput) (models.Post, error) {
	req := h.authedRequest(ctx).SetPathParam("id", id).SetBody(input)

	post, err := do[models.Post](req, resty.MethodPatch, "/posts/{id}")
	if err != nil {
		return models.Post{}, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost implements [ServerAdapter].
func (h *httpServerAdapter) DeletePost(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).SetPathParam("id", id).Delete("/posts/{id}")
	if err != nil {
		return fmt.Errorf("delete post request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// CreateUser implements [ServerAdapter].
func (h *httpServerAdapter) CreateUser(ctx context.Context, input models.UserInput) (models.User, error) {
	user, err := do[models.User](h.authedRequest(ctx).SetBody(input), resty.MethodPost, "/users/")
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// ChangePassword implements [ServerAdapter].
func (h *httpServerAdapter) ChangePassword(ctx context.Context, id, password string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetBody(models.PasswordChange{Password: password}).
		Put("/users/{id}/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// do executes req and decodes the data member of the response envelope.
func do[T any](req *resty.Request, method, path string) (T, error) {
	var zero T

	resp, err := req.Execute(method, path)
	if err != nil {
		return zero, fmt.Errorf("request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return zero, err
	}

	var body envelope[T]
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return body.Data, nil
}
