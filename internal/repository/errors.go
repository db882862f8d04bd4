package repository

import "errors"

// ErrNotFound is returned when a query for a single entity finds no rows.
//
// The service layer checks for this error and translates it into
// apperrors.ErrNotFound, so business logic never sees sql.ErrNoRows or
// redis.Nil.
var ErrNotFound = errors.New("repository: not found")
