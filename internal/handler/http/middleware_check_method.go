// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/repraze/repraze-apps-sub001/internal/app"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler. A
// known path requested with an unsupported method is answered exactly like an
// unknown path, so callers cannot probe which routes exist. chi hands the
// handler down to every sub-router mounted before the registration.
func CheckHTTPMethod(w http.ResponseWriter, r *http.Request) {
	notFound(w, r)
}

// notFound writes the JSON 404 body used for unknown paths and records.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteMessage(w, app.MsgNotFound, http.StatusNotFound)
}
