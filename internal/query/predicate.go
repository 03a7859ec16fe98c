// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

// Predicate is a node of a storage-agnostic filter tree. Field names are the
// logical field names of a resource; the store maps them to columns.
type Predicate interface {
	predicate()
}

// Eq matches records whose Field equals Value.
type Eq struct {
	Field string
	Value any
}

// NotEq matches records whose Field differs from Value.
type NotEq struct {
	Field string
	Value any
}

// Lt matches records whose Field is strictly below Value.
type Lt struct {
	Field string
	Value any
}

// Gte matches records whose Field is at or above Value.
type Gte struct {
	Field string
	Value any
}

// IsNull matches records whose Field is unset.
type IsNull struct {
	Field string
}

// ContainsAll matches list fields holding every one of Values.
type ContainsAll struct {
	Field  string
	Values []string
}

// Overlaps matches list fields holding at least one of Values.
type Overlaps struct {
	Field  string
	Values []string
}

// And matches when every child matches. An empty And matches everything.
type And []Predicate

// Or matches when any child matches. An empty Or matches nothing.
type Or []Predicate

func (Eq) predicate()          {}
func (NotEq) predicate()       {}
func (Lt) predicate()          {}
func (Gte) predicate()         {}
func (IsNull) predicate()      {}
func (ContainsAll) predicate() {}
func (Overlaps) predicate()    {}
func (And) predicate()         {}
func (Or) predicate()          {}

// AllOf joins the non-nil predicates with And. It returns nil when nothing is
// left and the single predicate when only one is.
func AllOf(preds ...Predicate) Predicate {
	out := make(And, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}

	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}

// Spec is everything a store needs to answer a list request. Count and fetch
// are both derived from the same Spec, so they agree on the filter.
type Spec struct {
	// Where is nil when the listing is unfiltered.
	Where Predicate

	// Search is the trimmed free-text term; empty disables text search.
	Search       string
	SearchFields []string

	// Sort is empty for natural store order.
	Sort Sorts

	// Page is nil for an unbounded fetch.
	Page *Page
}
