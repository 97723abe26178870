// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a delete cannot proceed because
// dependent shows still exist, while ErrReference indicates that a show
// points at an artist or venue that does not exist.
package repository

import "errors"

// ErrConflict is returned when a delete cannot be performed because
// other records still depend on the row (e.g. deleting a venue that has
// shows). Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrDuplicateName is returned when an insert or update would give two
// venues (or two artists) the same name. Handlers should translate this
// into an HTTP 409 response.
var ErrDuplicateName = errors.New("name already exists")

// ErrReference is returned when a show references an artist or venue
// that does not exist. Handlers should translate this into an HTTP 422
// response.
var ErrReference = errors.New("referenced record does not exist")
