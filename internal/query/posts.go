// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"net/url"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/models"
)

// PostFilter holds the post predicates. Unset fields do not constrain.
type PostFilter struct {
	// Published is a composite of public and publish_date, see [Published].
	// When set, Public is ignored.
	Published *bool    `json:"published,omitempty"`
	Public    *bool    `json:"public,omitempty"`
	Listed    *bool    `json:"listed,omitempty"`
	Featured  *bool    `json:"featured,omitempty"`
	Category  *string  `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Search    string   `json:"search,omitempty"`
}

func (f PostFilter) Where(now time.Time) Predicate {
	var visibility Predicate
	switch {
	case f.Published != nil:
		visibility = Published(*f.Published, now)
	case f.Public != nil:
		visibility = Eq{Field: "public", Value: *f.Public}
	}

	preds := []Predicate{visibility}
	if f.Listed != nil {
		preds = append(preds, Eq{Field: "listed", Value: *f.Listed})
	}
	if f.Featured != nil {
		preds = append(preds, Eq{Field: "featured", Value: *f.Featured})
	}
	if f.Category != nil {
		preds = append(preds, Eq{Field: "category", Value: *f.Category})
	}
	if len(f.Tags) > 0 {
		preds = append(preds, ContainsAll{Field: "tags", Values: f.Tags})
	}

	return AllOf(preds...)
}

func (f PostFilter) SearchTerm() string {
	return f.Search
}

// AnonymousPostFilter is the fixed filter of anonymous post listings.
func AnonymousPostFilter() PostFilter {
	yes := true
	return PostFilter{Published: &yes, Listed: &yes}
}

type PostParams = Params[PostFilter]

// NewPostParams builds post list parameters from a query string.
func NewPostParams(values url.Values, caller access.Caller) (PostParams, error) {
	return newParams(Posts, values, caller, readPostFilter, AnonymousPostFilter())
}

func readPostFilter(p *parser) PostFilter {
	f := PostFilter{
		Published: p.flag("published"),
		Public:    p.flag("public"),
		Listed:    p.flag("listed"),
		Featured:  p.flag("featured"),
		Category:  p.text("category"),
	}
	if tags, ok := p.list("tags"); ok {
		f.Tags = tags
	}
	f.Search = p.search()

	if f.Published != nil {
		f.Public = nil
	}
	return f
}

// RelatedPosts returns the specification of posts related to post: listed
// posts sharing at least one tag, the post itself excluded. Anonymous callers
// only see published posts.
func RelatedPosts(post models.Post, caller access.Caller, now time.Time) Spec {
	where := AllOf(
		Overlaps{Field: "tags", Values: post.Tags},
		Eq{Field: "listed", Value: true},
		NotEq{Field: "id", Value: post.ID},
		Posts.ReadPredicate(caller, now),
	)

	return Spec{
		Where: where,
		Sort:  Posts.DefaultSort,
		Page:  &Page{Limit: RelatedLimit},
	}
}
