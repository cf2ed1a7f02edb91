package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/pkg/models"
)

const recommendationKeyPrefix = "recommendations"

// CacheKey derives the cache key for one (user, occasion, party size)
// combination. Pure so that key construction is testable in isolation.
func CacheKey(userID uuid.UUID, occasion string, partySize int) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		recommendationKeyPrefix, userID, strings.ToLower(occasion), partySize)
}

// RecommendationStore keeps materialized recommendation results in Redis as
// JSON values whose TTL mirrors the entry's logical expiry.
type RecommendationStore struct {
	redis  *redis.Client
	logger *logrus.Logger
}

func NewRecommendationStore(client *redis.Client, logger *logrus.Logger) *RecommendationStore {
	return &RecommendationStore{redis: client, logger: logger}
}

func (s *RecommendationStore) GetCachedRecommendation(
	ctx context.Context,
	userID uuid.UUID,
	occasion string,
	partySize int,
) (*models.RecommendationCacheEntry, error) {
	key := CacheKey(userID, occasion, partySize)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("recommendation %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("recommendation cache read failed: %w", err)
	}

	var entry models.RecommendationCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendation: %w", err)
	}
	return &entry, nil
}

// UpsertRecommendation stores the entry under its derived key. A previous
// entry for the same context is replaced wholesale.
func (s *RecommendationStore) UpsertRecommendation(ctx context.Context, entry *models.RecommendationCacheEntry) error {
	key := CacheKey(entry.UserID, entry.Context.Occasion, entry.Context.PartySize)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation entry: %w", err)
	}

	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("recommendation entry for %s already expired", entry.UserID)
	}

	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("recommendation cache write failed: %w", err)
	}
	return nil
}

// ListRecommendationsByUser scans the user's keyspace slice and returns all
// live entries.
func (s *RecommendationStore) ListRecommendationsByUser(ctx context.Context, userID uuid.UUID) ([]models.RecommendationCacheEntry, error) {
	pattern := fmt.Sprintf("%s:%s:*", recommendationKeyPrefix, userID)

	var entries []models.RecommendationCacheEntry
	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.redis.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // expired between SCAN and GET
			}
			return nil, fmt.Errorf("recommendation cache read failed: %w", err)
		}

		var entry models.RecommendationCacheEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			s.logger.WithError(err).WithField("key", iter.Val()).Warn("Skipping malformed cached recommendation")
			continue
		}
		entries = append(entries, entry)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("recommendation scan failed: %w", err)
	}
	return entries, nil
}

// AppendClicked appends a click event to the stored entry, keeping the
// remaining TTL intact.
func (s *RecommendationStore) AppendClicked(ctx context.Context, entry *models.RecommendationCacheEntry, event models.RecommendationEvent) error {
	entry.ClickedTables = append(entry.ClickedTables, event)
	return s.rewrite(ctx, entry)
}

// AppendReserved appends a reservation event to the stored entry, keeping
// the remaining TTL intact.
func (s *RecommendationStore) AppendReserved(ctx context.Context, entry *models.RecommendationCacheEntry, event models.RecommendationEvent) error {
	entry.ReservedTables = append(entry.ReservedTables, event)
	return s.rewrite(ctx, entry)
}

func (s *RecommendationStore) rewrite(ctx context.Context, entry *models.RecommendationCacheEntry) error {
	key := CacheKey(entry.UserID, entry.Context.Occasion, entry.Context.PartySize)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation entry: %w", err)
	}

	if err := s.redis.Set(ctx, key, data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("recommendation cache rewrite failed: %w", err)
	}
	return nil
}

// DeleteAllRecommendations clears every cached entry. Used by the admin
// cache-bust operation after a model refresh.
func (s *RecommendationStore) DeleteAllRecommendations(ctx context.Context) error {
	pattern := recommendationKeyPrefix + ":*"

	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("recommendation scan failed: %w", err)
	}

	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("recommendation cache delete failed: %w", err)
		}
	}
	return nil
}
