// Package repository
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"url-shortener/internal/sharding"

	"github.com/go-sql-driver/mysql"
)

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS url_table (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	url_id VARCHAR(32) NOT NULL UNIQUE,
	url TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	insertURLQuery = `INSERT INTO url_table (url, url_id) VALUES (?, ?)`
	selectURLQuery = `SELECT url FROM url_table WHERE url_id = ?`
)

// sqlOpen is swapped in tests.
var sqlOpen = sql.Open

type URLRepository struct {
	router *sharding.ShardRouter
}

func NewURLRepository(router *sharding.ShardRouter) *URLRepository {
	return &URLRepository{
		router: router,
	}
}

// OpenShards opens and pings one MySQL pool per DSN, in order.
func OpenShards(ctx context.Context, dsns []string) ([]*sql.DB, error) {
	dbShards := make([]*sql.DB, 0, len(dsns))
	closeAll := func() {
		for _, db := range dbShards {
			db.Close()
		}
	}
	for i, dsn := range dsns {
		if _, err := mysql.ParseDSN(dsn); err != nil {
			closeAll()
			return nil, fmt.Errorf("shard %d: %w", i, err)
		}
		db, err := sqlOpen("mysql", dsn)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("shard %d: %w", i, err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			closeAll()
			return nil, fmt.Errorf("shard %d: ping: %w", i, err)
		}
		dbShards = append(dbShards, db)
	}
	return dbShards, nil
}

// EnsureSchema creates url_table on every shard.
func (r *URLRepository) EnsureSchema(ctx context.Context) error {
	for _, shard := range r.router.Shards() {
		if _, err := shard.DB.ExecContext(ctx, createTableQuery); err != nil {
			return fmt.Errorf("shard %d: create url_table: %w", shard.Index, err)
		}
	}
	return nil
}

// InsertURL stores url under urlID on the shard that owns urlID and returns that shard's index.
func (r *URLRepository) InsertURL(ctx context.Context, urlID, url string) (int, error) {
	shard, err := r.router.GetShard(urlID)
	if err != nil {
		return 0, err
	}

	_, err = shard.DB.ExecContext(ctx, insertURLQuery, url, urlID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return shard.Index, ErrDuplicateID
		}
		return shard.Index, fmt.Errorf("shard %d: insert url: %w", shard.Index, err)
	}
	return shard.Index, nil
}

func (r *URLRepository) GetURL(ctx context.Context, urlID string) (string, error) {
	shard, err := r.router.GetShard(urlID)
	if err != nil {
		return "", err
	}

	var url string
	err = shard.DB.QueryRowContext(ctx, selectURLQuery, urlID).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("shard %d: get url: %w", shard.Index, err)
	}
	return url, nil
}

// Close closes every shard pool and returns the first error.
func (r *URLRepository) Close() error {
	var firstErr error
	for _, shard := range r.router.Shards() {
		if err := shard.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
