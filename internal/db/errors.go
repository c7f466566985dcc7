package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants name the underlying database command for error context.
// Mongo commands are lowercase; cache commands keep Redis casing.
const (
	OpPing      = "ping"
	OpAggregate = "aggregate"
	OpFind      = "find"
	OpUpdateOne = "updateOne"
	OpGet       = "GET"
	OpSet       = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
