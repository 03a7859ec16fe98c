// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// List is one page of records together with the number of records matching
// the same filter.
type List[T any] struct {
	Items []T
	Total int64
}
