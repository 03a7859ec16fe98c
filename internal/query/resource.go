// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"slices"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/access"
)

// Resource describes what a collection can be sorted, searched and expanded
// by.
type Resource struct {
	Name         access.Resource
	SortFields   []string
	DefaultSort  Sorts
	SearchFields []string
	Relations    []string

	// anonymousRead narrows single-record reads for anonymous callers. Nil
	// means anonymous callers are held to nothing beyond [access.Authorize].
	anonymousRead func(now time.Time) Predicate
}

var (
	Posts = &Resource{
		Name:         access.Posts,
		SortFields:   []string{"name", "title", "publish_date", "featured", "created_at", "updated_at"},
		DefaultSort:  Sorts{{Field: "featured", Direction: Desc}, {Field: "publish_date", Direction: Desc}},
		SearchFields: []string{"title", "name"},
		Relations:    []string{ExpandAuthors, ExpandFeaturedMedia, ExpandMeta},
		anonymousRead: func(now time.Time) Predicate {
			return Published(true, now)
		},
	}

	Pages = &Resource{
		Name:         access.Pages,
		SortFields:   []string{"name", "title", "created_at", "updated_at"},
		DefaultSort:  Sorts{{Field: "title", Direction: Asc}},
		SearchFields: []string{"title", "name"},
		Relations:    []string{ExpandFeaturedMedia, ExpandMeta},
		anonymousRead: func(time.Time) Predicate {
			return Eq{Field: "public", Value: true}
		},
	}

	Media = &Resource{
		Name:         access.Media,
		SortFields:   []string{"name", "title", "created_at", "updated_at"},
		DefaultSort:  Sorts{{Field: "created_at", Direction: Desc}},
		SearchFields: []string{"title", "name"},
		Relations:    []string{ExpandMeta},
	}

	Users = &Resource{
		Name:         access.Users,
		SortFields:   []string{"username", "display_name", "created_at"},
		DefaultSort:  Sorts{{Field: "username", Direction: Asc}},
		SearchFields: []string{"username", "display_name"},
	}
)

func (r *Resource) sortable(field string) bool {
	return slices.Contains(r.SortFields, field)
}

func (r *Resource) expandable(relation string) bool {
	return slices.Contains(r.Relations, relation)
}

// ReadPredicate returns the visibility constraint a single-record read is
// held to. It is nil for authenticated callers.
func (r *Resource) ReadPredicate(caller access.Caller, now time.Time) Predicate {
	if caller.IsAuthenticated() || r.anonymousRead == nil {
		return nil
	}
	return r.anonymousRead(now)
}

// Published expands the composite published flag into stored fields.
//
//	true:  public AND publish_date < now
//	false: NOT public OR publish_date IS NULL OR publish_date >= now
func Published(published bool, now time.Time) Predicate {
	if published {
		return And{
			Eq{Field: "public", Value: true},
			Lt{Field: "publish_date", Value: now},
		}
	}

	return Or{
		Eq{Field: "public", Value: false},
		IsNull{Field: "publish_date"},
		Gte{Field: "publish_date", Value: now},
	}
}
