package repository

import "errors"

// ErrDuplicateEmail is returned when an insert trips the unique email index,
// which can happen even after a prior existence check under concurrency.
var ErrDuplicateEmail = errors.New("email already taken")
