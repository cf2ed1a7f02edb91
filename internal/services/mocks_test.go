package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/mirovate/tablematch/internal/config"
	"github.com/mirovate/tablematch/pkg/models"
)

type MockTableStore struct {
	mock.Mock
}

func (m *MockTableStore) QueryAvailableTables(ctx context.Context, filter models.TableFilter, limit int) ([]models.Table, error) {
	args := m.Called(ctx, filter, limit)
	return args.Get(0).([]models.Table), args.Error(1)
}

func (m *MockTableStore) ListTables(ctx context.Context) ([]models.Table, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Table), args.Error(1)
}

func (m *MockTableStore) GetTableByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableStore) IncrementBookingCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTableStore) UpdateRating(ctx context.Context, id uuid.UUID, newAverage float64) error {
	args := m.Called(ctx, id, newAverage)
	return args.Error(0)
}

type MockInteractionStore struct {
	mock.Mock
}

func (m *MockInteractionStore) InsertInteraction(ctx context.Context, interaction *models.TableInteraction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockInteractionStore) QueryInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.TableInteraction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.TableInteraction), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserRecord), args.Error(1)
}

type MockRecommendationStore struct {
	mock.Mock
}

func (m *MockRecommendationStore) GetCachedRecommendation(ctx context.Context, userID uuid.UUID, occasion string, partySize int) (*models.RecommendationCacheEntry, error) {
	args := m.Called(ctx, userID, occasion, partySize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecommendationCacheEntry), args.Error(1)
}

func (m *MockRecommendationStore) UpsertRecommendation(ctx context.Context, entry *models.RecommendationCacheEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRecommendationStore) ListRecommendationsByUser(ctx context.Context, userID uuid.UUID) ([]models.RecommendationCacheEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.RecommendationCacheEntry), args.Error(1)
}

func (m *MockRecommendationStore) AppendClicked(ctx context.Context, entry *models.RecommendationCacheEntry, event models.RecommendationEvent) error {
	args := m.Called(ctx, entry, event)
	return args.Error(0)
}

func (m *MockRecommendationStore) AppendReserved(ctx context.Context, entry *models.RecommendationCacheEntry, event models.RecommendationEvent) error {
	args := m.Called(ctx, entry, event)
	return args.Error(0)
}

func (m *MockRecommendationStore) DeleteAllRecommendations(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockDatasetProvider struct {
	mock.Mock
}

func (m *MockDatasetProvider) Snapshot(ctx context.Context) *DatasetSnapshot {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*DatasetSnapshot)
}

func (m *MockDatasetProvider) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockDatasetProvider) ModelInfo() models.ModelInfo {
	args := m.Called()
	return args.Get(0).(models.ModelInfo)
}

func (m *MockDatasetProvider) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testEngineConfig() *config.EngineConfig {
	return &config.EngineConfig{
		CollaborativeWeight: 0.4,
		ContentWeight:       0.6,
		CacheTTL:            time.Hour,
		RequestTimeout:      3 * time.Second,
		StorageTimeout:      2 * time.Second,
		DefaultCount:        10,
		InteractionLimit:    1000,
		RecentPerUser:       10,
	}
}
