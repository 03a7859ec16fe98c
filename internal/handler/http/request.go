// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/query"
	"github.com/repraze/repraze-apps-sub001/internal/utils"
	"github.com/repraze/repraze-apps-sub001/models"
)

// maxBodySize bounds every JSON request body.
const maxBodySize = 1 << 20

func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return v, nil
}

// parseExpand reads the expand parameter of a single-record request.
func parseExpand(r *http.Request, resource *query.Resource) (query.Expand, error) {
	return query.ParseExpand(resource, r.URL.Query(), access.FromContext(r.Context()))
}

// writeList writes list in the {data, meta} envelope. meta echoes the
// effective parameters next to the total count.
func writeList[T any, F query.Filter](w http.ResponseWriter, list models.List[T], params query.Params[F]) {
	items := list.Items
	if items == nil {
		items = []T{}
	}

	meta := models.ListMeta{
		Filter: params.Filter,
		Sort:   params.Sort,
		Page:   params.Page,
		Total:  list.Total,
	}
	if len(params.Expand) > 0 {
		meta.Expand = params.Expand
	}

	utils.WriteData(w, items, meta, http.StatusOK)
}
