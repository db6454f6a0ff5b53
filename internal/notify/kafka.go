package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"malaria-intake/internal/models"
	"malaria-intake/pkg/logger"
)

const (
	EventSubmissionCreated = "submission.created"
	eventSource            = "malaria-intake"
)

// Event é o envelope publicado no tópico
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaNotifier struct {
	writer         messageWriter
	topic          string
	collectionPath string
}

func NewKafkaNotifier(brokers []string, topic, collectionPath string) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaNotifier{writer: writer, topic: topic, collectionPath: collectionPath}
}

func (n *KafkaNotifier) NotifySubmission(ctx context.Context, sub *models.Submission) error {
	msg, err := buildKafkaMessage(sub, n.collectionPath, time.Now())
	if err != nil {
		return err
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", n.topic, err)
	}

	logger.WithFields(map[string]interface{}{
		"uid":   sub.UID,
		"topic": n.topic,
	}).Debug("submission event published")
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func buildKafkaMessage(sub *models.Submission, collectionPath string, now time.Time) (kafka.Message, error) {
	event := Event{
		ID:     uuid.NewString(),
		Type:   EventSubmissionCreated,
		Source: eventSource,
		Data: map[string]interface{}{
			"uid":            sub.UID,
			"collectionPath": collectionPath,
			"tipoMalaria":    sub.TipoMalaria,
			"estado":         sub.Estado,
		},
		Timestamp: now,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(sub.UID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(EventSubmissionCreated)},
			{Key: "source", Value: []byte(eventSource)},
		},
	}, nil
}
