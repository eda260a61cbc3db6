// Package sharding routes short IDs to the database shard that owns them.
package sharding

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"url-shortener/internal/hashring"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "sharding").Logger()

// Shard is one physical database together with its position in the configured shard list.
type Shard struct {
	Index int
	DB    *sql.DB
}

type ShardRouter struct {
	ring   *hashring.Ring[Shard]
	shards []Shard
}

// NewShardRouter places every shard on a consistent hashing ring. Shard i joins the ring as
// endpoint "i", so the same DSN order always yields the same routing.
func NewShardRouter(dbShards []*sql.DB, virtualNodes int) (*ShardRouter, error) {
	if len(dbShards) == 0 {
		return nil, ErrNoShards
	}
	ring, err := hashring.New[Shard](virtualNodes)
	if err != nil {
		return nil, fmt.Errorf("build shard ring: %w", err)
	}

	shards := make([]Shard, 0, len(dbShards))
	for i, db := range dbShards {
		shard := Shard{Index: i, DB: db}
		ring.Add(strconv.Itoa(i), shard)
		shards = append(shards, shard)
	}
	logger.Debug().Int("shards", len(shards)).Int("positions", ring.Len()).Msg("shard ring built")

	return &ShardRouter{
		ring:   ring,
		shards: shards,
	}, nil
}

func (r *ShardRouter) GetShard(key string) (Shard, error) {
	return r.ring.Get(key)
}

func (r *ShardRouter) Shards() []Shard {
	return r.shards
}

func (r *ShardRouter) ShardCount() int {
	return len(r.shards)
}
