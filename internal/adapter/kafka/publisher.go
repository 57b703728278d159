// Package kafka fans recorded samples out to a Kafka topic for downstream
// consumers (alerting, archival). The publisher is optional and feature-flagged.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/coastal-monitor/internal/config"
	"github.com/couchcryptid/coastal-monitor/internal/domain"
)

// Publisher produces classified samples to a Kafka topic.
// It implements ingest.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes one classified sample and writes it to the sink topic.
func (p *Publisher) Publish(ctx context.Context, rec domain.ClassifiedSample) error {
	msg, err := serializeToMessage(rec)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a classified sample into a Kafka message keyed by
// sample id, so per-sample ordering is stable under partitioning.
func serializeToMessage(rec domain.ClassifiedSample) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize sample: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(rec.ID, 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "overall_status", Value: []byte(rec.OverallStatus)},
			{Key: "recorded_at", Value: []byte(rec.Timestamp)},
		},
	}, nil
}
