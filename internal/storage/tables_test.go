package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirovate/tablematch/pkg/models"
)

func tableRows(tables ...models.Table) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "table_name", "table_type", "capacity", "status", "location", "ambiance",
		"has_window_view", "is_private", "price_tier", "features", "avg_rating",
		"total_bookings", "image", "description", "created_at", "updated_at",
	})
	for _, t := range tables {
		rows.AddRow(
			t.ID, t.TableName, t.TableType, t.Capacity, t.Status, t.Location, t.Ambiance,
			t.HasWindowView, t.IsPrivate, t.PriceTier, t.Features, t.AvgRating,
			t.TotalBookings, t.Image, t.Description, t.CreatedAt, t.UpdatedAt,
		)
	}
	return rows
}

func testTable() models.Table {
	return models.Table{
		ID:            uuid.New(),
		TableName:     "Garden 2",
		TableType:     "standard",
		Capacity:      2,
		Status:        models.TableStatusAvailable,
		Location:      models.LocationGarden,
		Ambiance:      models.AmbianceIntimate,
		HasWindowView: true,
		IsPrivate:     true,
		PriceTier:     models.PriceTierMidRange,
		Features:      []string{"candlelight"},
		AvgRating:     4.5,
		TotalBookings: 42,
		CreatedAt:     time.Now().Add(-24 * time.Hour),
		UpdatedAt:     time.Now(),
	}
}

func TestTableStore_GetTableByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expected := testTable()
	mock.ExpectQuery("SELECT .+ FROM dining_tables WHERE id").
		WithArgs(expected.ID).
		WillReturnRows(tableRows(expected))

	store := NewTableStore(mock, nil)
	table, err := store.GetTableByID(context.Background(), expected.ID)
	require.NoError(t, err)

	assert.Equal(t, expected.ID, table.ID)
	assert.Equal(t, expected.TableName, table.TableName)
	assert.Equal(t, expected.AvgRating, table.AvgRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableStore_GetTableByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM dining_tables WHERE id").
		WithArgs(id).
		WillReturnRows(tableRows())

	store := NewTableStore(mock, nil)
	_, err = store.GetTableByID(context.Background(), id)

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTableStore_QueryAvailableTables_Filtered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expected := testTable()
	mock.ExpectQuery("SELECT .+ FROM dining_tables WHERE status = .+ AND capacity >= .+ AND capacity <= .+ AND ambiance = ANY").
		WithArgs(models.TableStatusAvailable, 1, 4, []string{models.AmbianceIntimate, models.AmbianceQuiet}).
		WillReturnRows(tableRows(expected))

	store := NewTableStore(mock, nil)
	tables, err := store.QueryAvailableTables(context.Background(), models.TableFilter{
		MinCapacity: 1,
		MaxCapacity: 4,
		Ambiances:   []string{models.AmbianceIntimate, models.AmbianceQuiet},
	}, 0)
	require.NoError(t, err)

	require.Len(t, tables, 1)
	assert.Equal(t, expected.ID, tables[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableStore_QueryAvailableTables_Unfiltered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM dining_tables WHERE status = .+ ORDER BY avg_rating DESC, total_bookings DESC LIMIT").
		WithArgs(models.TableStatusAvailable, 10).
		WillReturnRows(tableRows(testTable(), testTable()))

	store := NewTableStore(mock, nil)
	tables, err := store.QueryAvailableTables(context.Background(), models.TableFilter{}, 10)
	require.NoError(t, err)

	assert.Len(t, tables, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableStore_IncrementBookingCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE dining_tables SET total_bookings = total_bookings").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	store := NewTableStore(mock, nil)
	assert.NoError(t, store.IncrementBookingCount(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableStore_UpdateRating_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE dining_tables SET avg_rating").
		WithArgs(id, 4.25).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewTableStore(mock, nil)
	err = store.UpdateRating(context.Background(), id, 4.25)

	assert.True(t, errors.Is(err, ErrNotFound))
}
