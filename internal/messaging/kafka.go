package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/config"
	"github.com/mirovate/tablematch/pkg/models"
)

const TableInteractionsTopic = "table-interactions"

// InteractionEvent is the wire shape published for every recorded
// interaction. Downstream consumers rebuild engagement analytics from it.
type InteractionEvent struct {
	Interaction models.TableInteraction `json:"interaction"`
	Timestamp   time.Time               `json:"timestamp"`
}

// InteractionProducer publishes interaction events to Kafka. Publishing is
// best effort; callers treat errors as log-worthy, not fatal.
type InteractionProducer struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewInteractionProducer(cfg *config.KafkaConfig, logger *logrus.Logger) *InteractionProducer {
	return &InteractionProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topics.TableInteractions,
			Balancer:     &kafka.Hash{}, // Key by user for per-user ordering
			RequiredAcks: kafka.RequireOne,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
		logger: logger,
	}
}

func (p *InteractionProducer) PublishInteraction(ctx context.Context, interaction *models.TableInteraction) error {
	event := InteractionEvent{
		Interaction: *interaction,
		Timestamp:   time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(interaction.UserID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "interaction_id", Value: []byte(interaction.ID.String())},
			{Key: "interaction_type", Value: []byte(interaction.Type)},
			{Key: "timestamp", Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write interaction to Kafka: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"interaction_id": interaction.ID,
		"type":           interaction.Type,
		"topic":          p.writer.Topic,
	}).Debug("Interaction published to Kafka")

	return nil
}

func (p *InteractionProducer) Close() error {
	return p.writer.Close()
}
