package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist or does
// not belong to the given user. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")
