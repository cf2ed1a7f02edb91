package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/pkg/models"
)

const tableColumns = `id, table_name, table_type, capacity, status, location, ambiance,
	has_window_view, is_private, price_tier, features, avg_rating, total_bookings,
	image, description, created_at, updated_at`

// TableStore reads and maintains dining table records in PostgreSQL.
type TableStore struct {
	db     DatabaseQuerier
	logger *logrus.Logger
}

func NewTableStore(db DatabaseQuerier, logger *logrus.Logger) *TableStore {
	return &TableStore{db: db, logger: logger}
}

// QueryAvailableTables returns available tables ordered by rating and booking
// count. Zero filter fields and a zero limit mean "unconstrained".
func (s *TableStore) QueryAvailableTables(ctx context.Context, filter models.TableFilter, limit int) ([]models.Table, error) {
	query := fmt.Sprintf(`SELECT %s FROM dining_tables WHERE status = $1`, tableColumns)
	args := []interface{}{models.TableStatusAvailable}

	if filter.MinCapacity > 0 {
		args = append(args, filter.MinCapacity)
		query += fmt.Sprintf(" AND capacity >= $%d", len(args))
	}
	if filter.MaxCapacity > 0 {
		args = append(args, filter.MaxCapacity)
		query += fmt.Sprintf(" AND capacity <= $%d", len(args))
	}
	if len(filter.Ambiances) > 0 {
		args = append(args, filter.Ambiances)
		query += fmt.Sprintf(" AND ambiance = ANY($%d)", len(args))
	}

	query += " ORDER BY avg_rating DESC, total_bookings DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("available tables query failed: %w", err)
	}
	defer rows.Close()

	return scanTables(rows)
}

// ListTables returns every table regardless of status, most popular first.
func (s *TableStore) ListTables(ctx context.Context) ([]models.Table, error) {
	query := fmt.Sprintf(`SELECT %s FROM dining_tables ORDER BY avg_rating DESC, total_bookings DESC`, tableColumns)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("tables query failed: %w", err)
	}
	defer rows.Close()

	return scanTables(rows)
}

func (s *TableStore) GetTableByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	query := fmt.Sprintf(`SELECT %s FROM dining_tables WHERE id = $1`, tableColumns)

	row := s.db.QueryRow(ctx, query, id)
	table, err := scanTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("table lookup failed: %w", err)
	}
	return table, nil
}

func (s *TableStore) IncrementBookingCount(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE dining_tables SET total_bookings = total_bookings + 1, updated_at = NOW() WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("booking count update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *TableStore) UpdateRating(ctx context.Context, id uuid.UUID, newAverage float64) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE dining_tables SET avg_rating = $2, updated_at = NOW() WHERE id = $1`,
		id, newAverage)
	if err != nil {
		return fmt.Errorf("rating update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanTables(rows pgx.Rows) ([]models.Table, error) {
	var tables []models.Table
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table row: %w", err)
		}
		tables = append(tables, *table)
	}
	return tables, rows.Err()
}

func scanTable(row pgx.Row) (*models.Table, error) {
	var t models.Table
	err := row.Scan(
		&t.ID, &t.TableName, &t.TableType, &t.Capacity, &t.Status, &t.Location,
		&t.Ambiance, &t.HasWindowView, &t.IsPrivate, &t.PriceTier, &t.Features,
		&t.AvgRating, &t.TotalBookings, &t.Image, &t.Description,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
