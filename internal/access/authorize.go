// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package access

import "fmt"

// Resource names a collection guarded by [Authorize].
type Resource string

const (
	Posts Resource = "posts"
	Pages Resource = "pages"
	Media Resource = "media"
	Users Resource = "users"
)

// Operation is the kind of access requested on a resource.
type Operation string

const (
	List   Operation = "list"
	Read   Operation = "read"
	Create Operation = "create"
	Update Operation = "update"
	Delete Operation = "delete"
)

// anonymousReads lists the resources anonymous callers may list and read.
// Visibility of individual records is narrowed further by the query layer.
var anonymousReads = map[Resource]bool{
	Posts: true,
	Pages: true,
}

// Authorize reports whether caller may perform op on resource.
func Authorize(caller Caller, resource Resource, op Operation) error {
	if caller.IsAuthenticated() {
		return nil
	}

	switch op {
	case List, Read:
		if anonymousReads[resource] {
			return nil
		}
	}

	return fmt.Errorf("%w: %s %s", ErrAuthenticationRequired, op, resource)
}
