package database

import "errors"

// ErrDatabaseNotFound is returned by Open when CreateIfNotExists is false
// and no archive database exists at the given directory. Callers such as
// the history command branch on it to distinguish "nothing archived yet"
// from a real open failure.
var ErrDatabaseNotFound = errors.New("database not found")
