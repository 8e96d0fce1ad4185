package store

import "errors"

// ErrNotFound is returned when a requested record does not exist. An unknown
// unit id is always reported, never silently treated as available.
var ErrNotFound = errors.New("store: record not found")
