package events

import (
	"context"
	"delivery-rate-service/internal/domain"
	"delivery-rate-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// QuoteIssuedEvent is the message published for every computed quote.
type QuoteIssuedEvent struct {
	QuoteID        string              `json:"quote_id"`
	RequestedAt    time.Time           `json:"requested_at"`
	DestLat        float64             `json:"dest_lat"`
	DestLon        float64             `json:"dest_lon"`
	StoreName      string              `json:"store_name"`
	DistanceMeters float64             `json:"distance_meters"`
	Suppressed     bool                `json:"suppressed"`
	Cost           decimal.NullDecimal `json:"cost"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaQuotePublisher publishes quote records to a Kafka topic, keyed by store name
// so quotes for the same store stay ordered within a partition.
type KafkaQuotePublisher struct {
	writer messageWriter
}

func NewKafkaQuotePublisher(brokers []string, topic string) (*KafkaQuotePublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka quote publisher: no brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka quote publisher: topic is empty")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaQuotePublisher{writer: w}, nil
}

func (p *KafkaQuotePublisher) Record(ctx context.Context, rec domain.QuoteRecord) error {
	msg, err := quoteMessage(rec)
	if err != nil {
		return fmt.Errorf("publish quote: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish quote quote_id=%s: %w", rec.ID, err)
	}
	return nil
}

func (p *KafkaQuotePublisher) Close() error {
	return p.writer.Close()
}

func quoteMessage(rec domain.QuoteRecord) (kafka.Message, error) {
	evt := QuoteIssuedEvent{
		QuoteID:        rec.ID.String(),
		RequestedAt:    rec.RequestedAt,
		DestLat:        rec.Destination.Latitude,
		DestLon:        rec.Destination.Longitude,
		StoreName:      rec.StoreName,
		DistanceMeters: rec.DistanceMeters,
		Suppressed:     rec.Suppressed,
		Cost:           rec.Cost,
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(rec.StoreName),
		Value: value,
		Time:  rec.RequestedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("quote.issued")},
		},
	}, nil
}

var _ ports.QuoteRecorder = (*KafkaQuotePublisher)(nil)
