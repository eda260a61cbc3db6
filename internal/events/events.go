// Package events announces stored short URLs on kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"url-shortener/internal/entity"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher interface {
	PublishURLCreated(ctx context.Context, event entity.URLCreated) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishURLCreated writes the event keyed by its short ID.
func (p *KafkaPublisher) PublishURLCreated(ctx context.Context, event entity.URLCreated) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal url created event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.URLID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("url.created")},
		},
	})
	if err != nil {
		return fmt.Errorf("publish url created event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishURLCreated(context.Context, entity.URLCreated) error { return nil }

func (NopPublisher) Close() error { return nil }
