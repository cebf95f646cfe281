package repository

import "errors"

// ErrDuplicateKey reports a unique constraint violation on insert.
var ErrDuplicateKey = errors.New("duplicate key")
