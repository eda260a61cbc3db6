// Package config
package config

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

func splitBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BatchTimeout bounds how long a synchronous publish waits for a batch to fill; events are
// written one at a time from the request path.
const BatchTimeout = 10 * time.Millisecond

// NewKafkaWriter returns a writer for the url event topic. Messages are keyed by short ID,
// so the hash balancer keeps every event of one ID on one partition.
func NewKafkaWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(splitBrokers(brokers)...),
		Topic:                  topic,
		Balancer:               &kafka.CRC32Balancer{},
		BatchTimeout:           BatchTimeout,
		AllowAutoTopicCreation: true,
	}
}
