// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"net/url"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/access"
)

// PageFilter holds the page predicates.
type PageFilter struct {
	Public *bool  `json:"public,omitempty"`
	Search string `json:"search,omitempty"`
}

func (f PageFilter) Where(time.Time) Predicate {
	if f.Public == nil {
		return nil
	}
	return Eq{Field: "public", Value: *f.Public}
}

func (f PageFilter) SearchTerm() string {
	return f.Search
}

type PageParams = Params[PageFilter]

func NewPageParams(values url.Values, caller access.Caller) (PageParams, error) {
	yes := true
	return newParams(Pages, values, caller, readPageFilter, PageFilter{Public: &yes})
}

func readPageFilter(p *parser) PageFilter {
	return PageFilter{
		Public: p.flag("public"),
		Search: p.search(),
	}
}

// MediaFilter holds the media predicates.
type MediaFilter struct {
	Public *bool  `json:"public,omitempty"`
	Search string `json:"search,omitempty"`
}

func (f MediaFilter) Where(time.Time) Predicate {
	if f.Public == nil {
		return nil
	}
	return Eq{Field: "public", Value: *f.Public}
}

func (f MediaFilter) SearchTerm() string {
	return f.Search
}

type MediaParams = Params[MediaFilter]

// NewMediaParams requires an authenticated caller.
func NewMediaParams(values url.Values, caller access.Caller) (MediaParams, error) {
	return newParams(Media, values, caller, readMediaFilter, MediaFilter{})
}

func readMediaFilter(p *parser) MediaFilter {
	return MediaFilter{
		Public: p.flag("public"),
		Search: p.search(),
	}
}

// UserFilter only supports free-text search.
type UserFilter struct {
	Search string `json:"search,omitempty"`
}

func (f UserFilter) Where(time.Time) Predicate {
	return nil
}

func (f UserFilter) SearchTerm() string {
	return f.Search
}

type UserParams = Params[UserFilter]

// NewUserParams requires an authenticated caller.
func NewUserParams(values url.Values, caller access.Caller) (UserParams, error) {
	return newParams(Users, values, caller, readUserFilter, UserFilter{})
}

func readUserFilter(p *parser) UserFilter {
	return UserFilter{Search: p.search()}
}
