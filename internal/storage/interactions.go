package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/pkg/models"
)

const interactionColumns = `id, user_id, table_id, interaction_type, rating, session_duration,
	device_type, source, occasion, party_size, time_slot, timestamp, expires_at`

// InteractionStore persists interaction events in PostgreSQL. Rows carry an
// expires_at column; queries filter expired rows rather than relying on a
// background reaper.
type InteractionStore struct {
	db     DatabaseQuerier
	logger *logrus.Logger
}

func NewInteractionStore(db DatabaseQuerier, logger *logrus.Logger) *InteractionStore {
	return &InteractionStore{db: db, logger: logger}
}

func (s *InteractionStore) InsertInteraction(ctx context.Context, interaction *models.TableInteraction) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO table_interactions (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`, interactionColumns),
		interaction.ID, interaction.UserID, interaction.TableID, interaction.Type,
		interaction.Rating, interaction.SessionDuration, interaction.DeviceType,
		interaction.Source, interaction.Context.Occasion, interaction.Context.PartySize,
		interaction.Context.TimeSlot, interaction.Timestamp, interaction.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("interaction insert failed: %w", err)
	}
	return nil
}

// QueryInteractions returns unexpired interactions matching the filter,
// newest first.
func (s *InteractionStore) QueryInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.TableInteraction, error) {
	query := fmt.Sprintf(`SELECT %s FROM table_interactions WHERE expires_at > NOW()`, interactionColumns)
	var args []interface{}

	if filter.UserID != uuid.Nil {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.TableID != uuid.Nil {
		args = append(args, filter.TableID)
		query += fmt.Sprintf(" AND table_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND interaction_type = $%d", len(args))
	}

	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("interactions query failed: %w", err)
	}
	defer rows.Close()

	var interactions []models.TableInteraction
	for rows.Next() {
		var i models.TableInteraction
		if err := rows.Scan(
			&i.ID, &i.UserID, &i.TableID, &i.Type, &i.Rating, &i.SessionDuration,
			&i.DeviceType, &i.Source, &i.Context.Occasion, &i.Context.PartySize,
			&i.Context.TimeSlot, &i.Timestamp, &i.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interaction row: %w", err)
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}
