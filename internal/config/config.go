package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

var ErrNoShardDSN = errors.New("config: DATABASE_URL1 is not set")

// Config holds the application configuration
type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR,default=:8082"`
	BaseURL       string        `env:"BASE_URL,default=http://localhost:8082"`
	VirtualNodes  int           `env:"VIRTUAL_NODES,default=100"`
	IDLength      int           `env:"ID_LENGTH,default=5"`
	MaxIDAttempts int           `env:"MAX_ID_ATTEMPTS,default=5"`
	KafkaBrokers  string        `env:"KAFKA_BROKERS,default=localhost:9092,localhost:9093,localhost:9094"`
	KafkaTopic    string        `env:"KAFKA_TOPIC,default=url-events"`
	RedisAddr     string        `env:"REDIS_ADDR,default=localhost:6379"`
	CacheTTL      time.Duration `env:"CACHE_TTL,default=24h"`
	JWTSecret     string        `env:"JWT_SECRET"`

	// ShardDSNs is filled from DATABASE_URL1, DATABASE_URL2, ... in that order.
	ShardDSNs []string
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Process(ctx, envconfig.OsLookuper())
}

// Process builds a Config from lookuper; it is separated from Load for tests.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}

	dsns, err := ShardDSNs(lookuper.Lookup)
	if err != nil {
		return nil, err
	}
	cfg.ShardDSNs = dsns
	return &cfg, nil
}

// ShardDSNs collects DATABASE_URL1..N, stopping at the first unset or empty variable.
// Shard i of the ring is DATABASE_URL<i+1>; reordering the variables reroutes keys.
func ShardDSNs(lookupEnv func(string) (string, bool)) ([]string, error) {
	var dsns []string
	for i := 1; ; i++ {
		dsn, ok := lookupEnv("DATABASE_URL" + strconv.Itoa(i))
		if !ok || dsn == "" {
			break
		}
		dsns = append(dsns, dsn)
	}
	if len(dsns) == 0 {
		return nil, ErrNoShardDSN
	}
	return dsns, nil
}
