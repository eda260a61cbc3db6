package sharding

import "errors"

var (
	ErrNoShards = errors.New("sharding: at least one shard is required")
)
