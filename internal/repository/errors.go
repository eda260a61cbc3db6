package repository

import "errors"

var (
	ErrNotFound    = errors.New("url not found")
	ErrDuplicateID = errors.New("url id already taken")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062
