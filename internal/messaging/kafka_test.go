package messaging

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirovate/tablematch/internal/config"
	"github.com/mirovate/tablematch/pkg/models"
)

func TestNewInteractionProducer(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.KafkaConfig{Brokers: []string{"localhost:9092"}}
	cfg.Topics.TableInteractions = "table-interactions"

	p := NewInteractionProducer(cfg, logger)
	require.NotNil(t, p)

	assert.Equal(t, "table-interactions", p.writer.Topic)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
	assert.False(t, p.writer.Async)
	assert.NoError(t, p.Close())
}

func TestInteractionEventShape(t *testing.T) {
	event := InteractionEvent{
		Interaction: models.TableInteraction{
			ID:      uuid.New(),
			UserID:  uuid.New(),
			TableID: uuid.New(),
			Type:    models.InteractionBooking,
			Context: models.DiningContext{Occasion: "Romantic", PartySize: 2},
		},
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"interaction_type":"booking"`)
	assert.Contains(t, string(data), `"occasion":"Romantic"`)
}
