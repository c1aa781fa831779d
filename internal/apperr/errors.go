// Package apperr defines the sentinel errors reported by the core.
package apperr

import "errors"

var (
	// ErrNotFound is returned for an unknown id or an unresolvable path segment.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned on a sibling name collision during create or rename.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrCycle is returned when a folder move would make the folder its own descendant.
	ErrCycle = errors.New("move would create a cycle")
	// ErrOriginalParentGone is returned when a restore target folder has been purged.
	ErrOriginalParentGone = errors.New("original parent no longer exists")
	// ErrVersionOutOfRange is returned for an invalid version history index.
	ErrVersionOutOfRange = errors.New("version index out of range")
	// ErrParse marks a malformed note file encountered during a disk scan.
	ErrParse = errors.New("malformed note file")
)
