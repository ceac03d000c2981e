// Package repository defines error values that are reused across multiple
// repositories.  These sentinels let handlers distinguish failure scenarios
// without inspecting driver error strings: ErrNotFound maps to HTTP 404,
// ErrForbidden to 403 and ErrConflict to 409.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts a mutation on a resource
// owned by someone else.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update violates a uniqueness
// rule other than the user email (which has its own sentinel).
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering with an email that is already
// taken.  The users.email unique key is the source of truth.
var ErrEmailExists = errors.New("email already exists")

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKViolation reports whether err is a MySQL foreign-key failure (1452),
// i.e. a referenced row does not exist.
func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
