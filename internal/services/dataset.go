package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/mirovate/tablematch/internal/config"
	"github.com/mirovate/tablematch/pkg/models"
)

// interactionWeights is the fixed engagement lookup used by the collaborative
// scorer. Unlisted types carry the baseline weight.
var interactionWeights = map[string]float64{
	models.InteractionView:     1.0,
	models.InteractionInquiry:  2.0,
	models.InteractionFavorite: 3.0,
	models.InteractionRating:   4.0,
	models.InteractionBooking:  5.0,
}

// InteractionWeight returns the engagement weight for an interaction type.
func InteractionWeight(interactionType string) float64 {
	if w, ok := interactionWeights[interactionType]; ok {
		return w
	}
	return 1.0
}

// InteractionRecord is an interaction shaped for scoring.
type InteractionRecord struct {
	UserID    uuid.UUID
	TableID   uuid.UUID
	Type      string
	Weight    float64
	Rating    *float64
	Context   models.DiningContext
	Timestamp time.Time
}

// DatasetSnapshot holds the three in-memory collections the scorers run over.
// Immutable once built; shared across requests.
type DatasetSnapshot struct {
	Tables       []models.Table
	Users        map[uuid.UUID]models.UserFeatures
	Interactions []InteractionRecord
	LoadedAt     time.Time
}

// DatasetLoader materializes the scoring datasets from storage, falling back
// per collection to a built-in fixture set when a load fails. The first load
// is single-flight; the snapshot is memoized for the process lifetime until
// Refresh is called.
type DatasetLoader struct {
	tables       TableStore
	users        UserStore
	interactions InteractionStore
	cfg          *config.EngineConfig
	logger       *logrus.Logger

	mu       sync.Mutex
	snapshot *DatasetSnapshot
}

func NewDatasetLoader(
	tables TableStore,
	users UserStore,
	interactions InteractionStore,
	cfg *config.EngineConfig,
	logger *logrus.Logger,
) *DatasetLoader {
	return &DatasetLoader{
		tables:       tables,
		users:        users,
		interactions: interactions,
		cfg:          cfg,
		logger:       logger,
	}
}

// Snapshot returns the memoized dataset, loading it on first use. Concurrent
// first callers block on the in-flight load and reuse its result. Never
// returns nil: degradation ends at the fixtures.
func (l *DatasetLoader) Snapshot(ctx context.Context) *DatasetSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snapshot == nil {
		l.snapshot = l.load(ctx)
	}
	return l.snapshot
}

// Ready reports whether a snapshot has been materialized.
func (l *DatasetLoader) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot != nil
}

// Refresh forces re-population from storage.
func (l *DatasetLoader) Refresh(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshot = l.load(ctx)
	return nil
}

// ModelInfo describes the loader state for diagnostics.
func (l *DatasetLoader) ModelInfo() models.ModelInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	info := models.ModelInfo{Loaded: l.snapshot != nil}
	if l.snapshot != nil {
		info.DatasetSizes = models.DatasetSizes{
			Tables:       len(l.snapshot.Tables),
			Users:        len(l.snapshot.Users),
			Interactions: len(l.snapshot.Interactions),
		}
	}
	return info
}

func (l *DatasetLoader) load(ctx context.Context) *DatasetSnapshot {
	tables := l.loadTables(ctx)
	interactions := l.loadInteractions(ctx)
	users := l.loadUsers(ctx, tables, interactions)

	l.logger.WithFields(logrus.Fields{
		"tables":       len(tables),
		"users":        len(users),
		"interactions": len(interactions),
	}).Info("Datasets loaded")

	return &DatasetSnapshot{
		Tables:       tables,
		Users:        users,
		Interactions: interactions,
		LoadedAt:     time.Now(),
	}
}

func (l *DatasetLoader) loadTables(ctx context.Context) []models.Table {
	loadCtx, cancel := context.WithTimeout(ctx, l.cfg.StorageTimeout)
	defer cancel()

	tables, err := l.tables.ListTables(loadCtx)
	if err != nil || len(tables) == 0 {
		l.logger.WithError(err).Warn("Table dataset load failed, using fixtures")
		return fixtureTables()
	}
	return tables
}

func (l *DatasetLoader) loadInteractions(ctx context.Context) []InteractionRecord {
	loadCtx, cancel := context.WithTimeout(ctx, l.cfg.StorageTimeout)
	defer cancel()

	raw, err := l.interactions.QueryInteractions(loadCtx, models.InteractionFilter{Limit: l.cfg.InteractionLimit})
	if err != nil || len(raw) == 0 {
		l.logger.WithError(err).Warn("Interaction dataset load failed, using fixtures")
		return fixtureInteractions()
	}

	records := make([]InteractionRecord, 0, len(raw))
	for _, i := range raw {
		records = append(records, InteractionRecord{
			UserID:    i.UserID,
			TableID:   i.TableID,
			Type:      i.Type,
			Weight:    InteractionWeight(i.Type),
			Rating:    i.Rating,
			Context:   i.Context,
			Timestamp: i.Timestamp,
		})
	}
	return records
}

func (l *DatasetLoader) loadUsers(ctx context.Context, tables []models.Table, interactions []InteractionRecord) map[uuid.UUID]models.UserFeatures {
	loadCtx, cancel := context.WithTimeout(ctx, l.cfg.StorageTimeout)
	defer cancel()

	users, err := l.users.ListUsers(loadCtx)
	if err != nil || len(users) == 0 {
		l.logger.WithError(err).Warn("User dataset load failed, using fixtures")
		return fixtureUsers()
	}

	windowTables := make(map[uuid.UUID]bool, len(tables))
	for _, t := range tables {
		if t.HasWindowView {
			windowTables[t.ID] = true
		}
	}

	features := make(map[uuid.UUID]models.UserFeatures, len(users))
	for _, u := range users {
		features[u.ID] = l.deriveUserFeatures(u, interactions, windowTables)
	}
	return features
}

// deriveUserFeatures builds a preference profile from the user's most recent
// interactions. The occasion mode breaks ties by first occurrence in recency
// order, which keeps derivation deterministic.
func (l *DatasetLoader) deriveUserFeatures(
	user models.UserRecord,
	interactions []InteractionRecord,
	windowTables map[uuid.UUID]bool,
) models.UserFeatures {
	recent := recentUserInteractions(interactions, user.ID, l.cfg.RecentPerUser)

	partySizes := make([]float64, 0, len(recent))
	occasionCounts := make(map[string]int)
	var occasionOrder []string
	prefersWindow := false
	prefersPrivate := false

	for _, i := range recent {
		if i.Context.PartySize > 0 {
			partySizes = append(partySizes, float64(i.Context.PartySize))
		}
		if i.Context.Occasion != "" {
			if occasionCounts[i.Context.Occasion] == 0 {
				occasionOrder = append(occasionOrder, i.Context.Occasion)
			}
			occasionCounts[i.Context.Occasion]++
			if i.Context.Occasion == OccasionRomantic {
				prefersPrivate = true
			}
		}
		if windowTables[i.TableID] {
			prefersWindow = true
		}
	}

	groupSize := defaultPartySize
	if len(partySizes) > 0 {
		groupSize = int(math.Round(stat.Mean(partySizes, nil)))
	}

	occasion := OccasionCasual
	best := 0
	for _, o := range occasionOrder {
		if occasionCounts[o] > best {
			best = occasionCounts[o]
			occasion = o
		}
	}

	return models.UserFeatures{
		UserID:             user.ID,
		PreferredGroupSize: groupSize,
		PreferredOccasion:  occasion,
		PrefersQuiet:       user.SpicePreference == "mild",
		PrefersWindow:      prefersWindow,
		PrefersPrivate:     prefersPrivate,
	}
}

// recentUserInteractions returns up to limit interactions for the user,
// newest first.
func recentUserInteractions(interactions []InteractionRecord, userID uuid.UUID, limit int) []InteractionRecord {
	var mine []InteractionRecord
	for _, i := range interactions {
		if i.UserID == userID {
			mine = append(mine, i)
		}
	}
	sort.SliceStable(mine, func(a, b int) bool {
		return mine[a].Timestamp.After(mine[b].Timestamp)
	})
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine
}
