package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is the message published for booking lifecycle changes and
// for the daily reset.
type BookingEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	BookingID   int64     `json:"booking_id,omitempty"`
	SectionID   int       `json:"section_id,omitempty"`
	SlotNumber  int       `json:"slot_number,omitempty"`
	FullName    string    `json:"full_name,omitempty"`
	Place       string    `json:"place,omitempty"`
	Mobile      string    `json:"mobile,omitempty"`
	BookingDate string    `json:"booking_date,omitempty"`
	Archived    int64     `json:"archived,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
