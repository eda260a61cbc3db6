package hashring

import "errors"

// All the errors related to hashring
var (
	ErrInvalidConfiguration = errors.New("hashring: replication factor must be at least 1")
	ErrEmptyRing            = errors.New("hashring: ring has no endpoints")
)
