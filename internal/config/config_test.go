package config

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessDefaults(t *testing.T) {
	env := map[string]string{"DATABASE_URL1": "user:pass@tcp(db1:3306)/urls"}
	cfg, err := Process(context.Background(), envconfig.MapLookuper(env))
	require.NoError(t, err)

	assert.Equal(t, ":8082", cfg.HTTPAddr)
	assert.Equal(t, 100, cfg.VirtualNodes)
	assert.Equal(t, 5, cfg.IDLength)
	assert.Equal(t, 5, cfg.MaxIDAttempts)
	assert.Equal(t, "localhost:9092,localhost:9093,localhost:9094", cfg.KafkaBrokers)
	assert.Equal(t, "url-events", cfg.KafkaTopic)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"user:pass@tcp(db1:3306)/urls"}, cfg.ShardDSNs)
}

func TestProcessOverrides(t *testing.T) {
	env := map[string]string{
		"HTTP_ADDR":     ":9000",
		"VIRTUAL_NODES": "250",
		"CACHE_TTL":     "5m",
		"JWT_SECRET":    "s3cret",
		"DATABASE_URL1": "a",
		"DATABASE_URL2": "b",
	}
	cfg, err := Process(context.Background(), envconfig.MapLookuper(env))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 250, cfg.VirtualNodes)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestProcessRejectsBadInt(t *testing.T) {
	env := map[string]string{"VIRTUAL_NODES": "many", "DATABASE_URL1": "a"}
	_, err := Process(context.Background(), envconfig.MapLookuper(env))
	assert.Error(t, err)
}

func TestShardDSNs(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want []string
		err  error
	}{{
		name: "ordered",
		env:  map[string]string{"DATABASE_URL1": "a", "DATABASE_URL2": "b", "DATABASE_URL3": "c"},
		want: []string{"a", "b", "c"},
	}, {
		name: "stops at gap",
		env:  map[string]string{"DATABASE_URL1": "a", "DATABASE_URL3": "c"},
		want: []string{"a"},
	}, {
		name: "stops at empty",
		env:  map[string]string{"DATABASE_URL1": "a", "DATABASE_URL2": "", "DATABASE_URL3": "c"},
		want: []string{"a"},
	}, {
		name: "none",
		env:  map[string]string{"DATABASE_URL2": "b"},
		err:  ErrNoShardDSN,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShardDSNs(envconfig.MapLookuper(tt.env).Lookup)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ShardDSNs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter(" k1:9092, k2:9092,", "url-events")
	assert.Equal(t, "url-events", w.Topic)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, splitBrokers(" k1:9092, k2:9092,"))
	assert.True(t, w.AllowAutoTopicCreation)
	assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
	assert.NotNil(t, w.Addr)
}
