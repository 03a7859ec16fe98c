// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/repraze/repraze-apps-sub001/internal/app"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteData(w, h.services.AppInfoService.GetAppInfo(r.Context()), nil, http.StatusOK)
}

func health(w http.ResponseWriter, _ *http.Request) {
	utils.WriteMessage(w, app.MsgOK, http.StatusOK)
}
