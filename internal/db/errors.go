package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound       = errors.New("db: key not found")
	ErrMalformedDocument = errors.New("db: malformed document")

	// ErrBatchClaimed reports that the item batch was already written by another writer.
	ErrBatchClaimed = errors.New("db: item batch already written")
)

// Op constants name the native command or operation for error context.
const (
	OpPing          = "PING"
	OpHGetAll       = "HGETALL"
	OpHSet          = "HSET"
	OpLRange        = "LRANGE"
	OpLLen          = "LLEN"
	OpGet           = "GET"
	OpSet           = "SET"
	OpDel           = "DEL"
	OpExec          = "EXEC"
	OpFind          = "find"
	OpFindOne       = "findOne"
	OpCount         = "countDocuments"
	OpInsertMany    = "insertMany"
	OpReplaceOne    = "replaceOne"
	OpFindAndModify = "findAndModify"
	OpCreateIndexes = "createIndexes"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
