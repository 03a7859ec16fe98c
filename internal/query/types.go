// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"encoding/json"
	"slices"

	"github.com/repraze/repraze-apps-sub001/internal/coerce"
)

type SortDirection = coerce.SortDirection

const (
	Asc  = coerce.Asc
	Desc = coerce.Desc
)

// Sort orders by one field.
type Sort struct {
	Field     string
	Direction SortDirection
}

// String renders the sort the way it is written in a query string.
func (s Sort) String() string {
	if s.Direction == Desc {
		return "-" + s.Field
	}
	return s.Field
}

// Sorts is an ordered list of sort keys; earlier keys take precedence.
type Sorts []Sort

// MarshalJSON encodes the sort list as its query-string form, e.g.
// ["-featured","-publish_date"].
func (s Sorts) MarshalJSON() ([]byte, error) {
	out := make([]string, len(s))
	for i, item := range s {
		out[i] = item.String()
	}
	return json.Marshal(out)
}

const (
	DefaultLimit = 25
	MaxLimit     = 100
	RelatedLimit = 5
)

// Page is the pagination window.
type Page struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// DefaultPage returns the window used when no limit or skip is given.
func DefaultPage() Page {
	return Page{Limit: DefaultLimit}
}

// Relation names accepted by the expand parameter.
const (
	ExpandAuthors       = "authors"
	ExpandFeaturedMedia = "featured_media"
	ExpandMeta          = "meta"
)

// Expand is the set of relations to resolve, in request order without
// duplicates.
type Expand []string

// Has reports whether relation was requested.
func (e Expand) Has(relation string) bool {
	return slices.Contains(e, relation)
}
