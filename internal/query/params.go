// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package query turns list request parameters into a storage-agnostic
// [Spec].
//
// Raw query-string values are first normalised with package coerce, then
// validated field by field; the first failing parameter is reported as a
// *validators.ValidationError. The caller's authentication state decides
// which parameters are honoured: anonymous callers get the resource's fixed
// default filter and sort, and can only page and expand public relations.
package query

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/coerce"
	"github.com/repraze/repraze-apps-sub001/internal/validators"
)

const maxSearchLength = 256

// Filter is the resource-specific part of [Params].
type Filter interface {
	// Where returns the filter predicate evaluated at now, or nil.
	Where(now time.Time) Predicate
	// SearchTerm returns the trimmed free-text term, or "".
	SearchTerm() string
}

// Params are the effective list parameters of one request. They are echoed
// back in the response meta.
type Params[F Filter] struct {
	Filter F      `json:"filter"`
	Sort   Sorts  `json:"sort"`
	Page   Page   `json:"page"`
	Expand Expand `json:"expand,omitempty"`

	// Now is captured once so count and fetch share one time snapshot.
	Now time.Time `json:"-"`

	resource *Resource
}

// Spec derives the store specification.
func (p Params[F]) Spec() Spec {
	page := p.Page
	spec := Spec{
		Where: p.Filter.Where(p.Now),
		Sort:  p.Sort,
		Page:  &page,
	}
	if term := p.Filter.SearchTerm(); term != "" {
		spec.Search = term
		spec.SearchFields = p.resource.SearchFields
	}
	return spec
}

// parser reads parameters in a fixed order and remembers the first error.
type parser struct {
	values url.Values
	err    error
}

func (p *parser) fail(name, message string) {
	if p.err == nil {
		p.err = validators.NewValidationError(validators.QueryField(name), message)
	}
}

func (p *parser) scalar(name string) (any, bool) {
	raw, ok := p.values[name]
	if !ok || p.err != nil {
		return nil, false
	}
	return coerce.First(raw), true
}

func (p *parser) list(name string) ([]string, bool) {
	raw, ok := p.values[name]
	if !ok || p.err != nil {
		return nil, false
	}

	var out []string
	for _, item := range raw {
		parts, _ := coerce.StringList(item).([]string)
		for _, part := range parts {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out, true
}

func (p *parser) flag(name string) *bool {
	raw, ok := p.scalar(name)
	if !ok {
		return nil
	}

	b, ok := coerce.Bool(raw).(bool)
	if !ok {
		p.fail(name, "must be a boolean")
		return nil
	}
	return &b
}

func (p *parser) text(name string) *string {
	raw, ok := p.scalar(name)
	if !ok {
		return nil
	}

	s, _ := raw.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (p *parser) search() string {
	s := p.text("search")
	if s == nil {
		return ""
	}
	if len(*s) > maxSearchLength {
		p.fail("search", "must be at most 256 characters")
		return ""
	}
	return *s
}

// number reads a non-negative integer. A digit string too large for int
// saturates to ceiling.
func (p *parser) number(name string, fallback, ceiling int) int {
	raw, ok := p.scalar(name)
	if !ok {
		return fallback
	}

	n, ok := coerce.Int(raw).(int)
	if ok {
		return n
	}
	if s, _ := raw.(string); isDigits(s) {
		return ceiling
	}

	p.fail(name, "must be a non-negative integer")
	return fallback
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}

func (p *parser) page() Page {
	page := DefaultPage()

	page.Limit = p.number("limit", DefaultLimit, MaxLimit)
	switch {
	case page.Limit < 1:
		p.fail("limit", "must be at least 1")
	case page.Limit > MaxLimit:
		page.Limit = MaxLimit
	}

	page.Skip = p.number("skip", 0, math.MaxInt)
	return page
}

func (p *parser) sort(r *Resource) Sorts {
	items, ok := p.list("sort")
	if !ok || len(items) == 0 {
		return r.DefaultSort
	}

	sorts := make(Sorts, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range coerce.Each(items, coerce.Sort).([]any) {
		d := item.(coerce.SortDescriptor)
		if !r.sortable(d.Field) {
			p.fail("sort", "cannot sort by "+quote(d.Field))
			return r.DefaultSort
		}
		if seen[d.Field] {
			continue
		}
		seen[d.Field] = true
		sorts = append(sorts, Sort{Field: d.Field, Direction: d.Direction})
	}
	return sorts
}

// expand reads the expand parameter. Anonymous callers never get meta.
func (p *parser) expand(r *Resource, caller access.Caller) Expand {
	items, ok := p.list("expand")
	if !ok {
		return nil
	}

	var out Expand
	for _, item := range items {
		if !r.expandable(item) {
			p.fail("expand", "cannot expand "+quote(item))
			return nil
		}
		if item == ExpandMeta && !caller.IsAuthenticated() {
			continue
		}
		if !out.Has(item) {
			out = append(out, item)
		}
	}
	return out
}

func quote(s string) string {
	return `"` + s + `"`
}

// newParams assembles the parts shared by every resource. readFilter is only
// called for authenticated callers; anonymous callers get anonFilter and the
// default sort.
func newParams[F Filter](
	r *Resource,
	values url.Values,
	caller access.Caller,
	readFilter func(*parser) F,
	anonFilter F,
) (Params[F], error) {
	if err := access.Authorize(caller, r.Name, access.List); err != nil {
		return Params[F]{}, err
	}

	p := &parser{values: values}
	params := Params[F]{
		Now:      time.Now(),
		resource: r,
	}

	if caller.IsAuthenticated() {
		params.Filter = readFilter(p)
		params.Sort = p.sort(r)
	} else {
		params.Filter = anonFilter
		params.Sort = r.DefaultSort
	}
	params.Page = p.page()
	params.Expand = p.expand(r, caller)

	if p.err != nil {
		return Params[F]{}, p.err
	}
	return params, nil
}

// ParseExpand reads only the expand parameter, for single-record endpoints.
func ParseExpand(r *Resource, values url.Values, caller access.Caller) (Expand, error) {
	p := &parser{values: values}
	expand := p.expand(r, caller)
	if p.err != nil {
		return nil, p.err
	}
	return expand, nil
}
