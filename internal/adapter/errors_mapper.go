// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/repraze/repraze-apps-sub001/models"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	message := responseMessage(resp)

	target, ok := statusErrors[resp.StatusCode()]
	if !ok {
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, resp.StatusCode(), message)
	}
	return fmt.Errorf("%w: %s", target, message)
}

// responseMessage prefers the {message, field} body and falls back to the raw
// body, then to the status text.
func responseMessage(resp *resty.Response) string {
	var body models.MessageResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		if body.Field != "" {
			return body.Field + ": " + body.Message
		}
		return body.Message
	}

	if raw := strings.TrimSpace(string(resp.Body())); raw != "" {
		return raw
	}
	return http.StatusText(resp.StatusCode())
}
