// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// Identified is implemented by every record that can be the target of a [Ref].
type Identified interface {
	Identifier() string
}

// Ref is a relation to another record. It is either a bare reference holding
// only the identifier, or an expanded reference holding the resolved record.
//
// The zero value is an empty reference (no identifier, nothing expanded).
type Ref[T Identified] struct {
	id    string
	value *T
}

// Reference returns an unexpanded relation to the record with the given id.
func Reference[T Identified](id string) Ref[T] {
	return Ref[T]{id: id}
}

// Expanded returns a relation that carries the resolved record.
func Expanded[T Identified](v T) Ref[T] {
	return Ref[T]{id: v.Identifier(), value: &v}
}

// ID normalises both variants to the identifier of the referenced record.
func (r Ref[T]) ID() string {
	if r.value != nil {
		return (*r.value).Identifier()
	}
	return r.id
}

// Value returns the expanded record, if any.
func (r Ref[T]) Value() (T, bool) {
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

// IsExpanded reports whether the record has been resolved.
func (r Ref[T]) IsExpanded() bool {
	return r.value != nil
}

// IsZero reports whether the reference points nowhere.
func (r Ref[T]) IsZero() bool {
	return r.value == nil && r.id == ""
}

// Collapse drops the expanded record and keeps only the identifier.
func (r Ref[T]) Collapse() Ref[T] {
	return Reference[T](r.ID())
}

// MarshalJSON encodes a bare reference as its id string and an expanded
// reference as the full record. An empty reference encodes as null.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch {
	case r.value != nil:
		return json.Marshal(*r.value)
	case r.id == "":
		return []byte("null"), nil
	default:
		return json.Marshal(r.id)
	}
}

// UnmarshalJSON accepts either an id string or a full record.
func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Reference[T](id)
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Expanded(v)
	return nil
}

// RefIDs returns the identifiers of refs in order.
func RefIDs[T Identified](refs []Ref[T]) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if id := ref.ID(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// References builds unexpanded refs from identifiers.
func References[T Identified](ids []string) []Ref[T] {
	refs := make([]Ref[T], 0, len(ids))
	for _, id := range ids {
		refs = append(refs, Reference[T](id))
	}
	return refs
}
