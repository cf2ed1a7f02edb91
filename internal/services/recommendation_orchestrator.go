package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/config"
	"github.com/mirovate/tablematch/internal/storage"
	"github.com/mirovate/tablematch/pkg/models"
)

// ErrNotFound is what stores report for missing records.
var ErrNotFound = storage.ErrNotFound

// RecommendationRequest carries the boundary-validated inputs for one
// recommendation request. A Nil UserID marks a guest.
type RecommendationRequest struct {
	UserID    uuid.UUID
	Occasion  string
	TimeSlot  string
	PartySize int
	Count     int
	UseCache  bool
}

// stageOutcome tags each cascade stage's result so failure modes are typed
// values rather than swallowed exceptions.
type stageOutcome int

const (
	stageOk stageOutcome = iota
	stageEmpty
	stageError
)

type stageResult struct {
	outcome    stageOutcome
	candidates []models.RankedCandidate
	err        error
}

// RecommendationOrchestrator drives the cascade:
// cache check -> hybrid generation -> smart-match supplement -> enrichment ->
// popularity fallback -> cache write. Every stage degrades to an empty
// contribution; the cascade always reaches a response.
type RecommendationOrchestrator struct {
	loader  DatasetProvider
	ranker  *HybridRanker
	tables  TableStore
	recs    RecommendationStore
	metrics *EngineMetrics
	cfg     *config.EngineConfig
	logger  *logrus.Logger
}

func NewRecommendationOrchestrator(
	loader DatasetProvider,
	ranker *HybridRanker,
	tables TableStore,
	recs RecommendationStore,
	metrics *EngineMetrics,
	cfg *config.EngineConfig,
	logger *logrus.Logger,
) *RecommendationOrchestrator {
	return &RecommendationOrchestrator{
		loader:  loader,
		ranker:  ranker,
		tables:  tables,
		recs:    recs,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}
}

// GetRecommendations generates a ranked, enriched table list for the request.
// Data unavailability is absorbed by the fallback chain; the returned
// response always carries Success=true.
func (o *RecommendationOrchestrator) GetRecommendations(
	ctx context.Context,
	req *RecommendationRequest,
) (*models.RecommendationResponse, error) {
	started := time.Now()
	defer func() {
		o.metrics.ObserveRequest(time.Since(started).Seconds())
	}()

	dc := models.DiningContext{
		Occasion:  NormalizeOccasion(req.Occasion),
		TimeSlot:  NormalizeTimeSlot(req.TimeSlot),
		PartySize: req.PartySize,
	}
	count := req.Count
	if count <= 0 {
		count = o.cfg.DefaultCount
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.RequestTimeout)
	defer cancel()

	isGuest := req.UserID == uuid.Nil

	// CacheCheck
	if req.UseCache && !isGuest {
		if entry := o.checkCache(ctx, req.UserID, dc); entry != nil {
			o.metrics.CacheHit()
			return &models.RecommendationResponse{
				Success:         true,
				Recommendations: entry.Recommendations,
				Cached:          true,
				GeneratedAt:     entry.GeneratedAt,
			}, nil
		}
		o.metrics.CacheMiss()
	}

	// MLGeneration
	ml := o.runStage("ml_generation", func() ([]models.RankedCandidate, error) {
		snap := o.loader.Snapshot(ctx)
		if snap == nil {
			return nil, nil
		}
		return o.ranker.Recommend(snap, req.UserID, dc, count), nil
	})
	usingML := ml.outcome == stageOk

	candidates := ml.candidates

	// A request that has already hit its deadline goes straight to the
	// popularity fallback.
	if ctx.Err() != nil {
		o.logger.WithField("user_id", req.UserID).Warn("Recommendation deadline exceeded, falling back to popularity")
		return o.popularityFallback(context.WithoutCancel(ctx), count, "Showing popular tables"), nil
	}

	// SmartMatchSupplement
	if len(candidates) < count {
		supplement := o.runStage("smart_matching", func() ([]models.RankedCandidate, error) {
			return o.smartMatchSupplement(ctx, dc, candidates, count, usingML)
		})
		candidates = append(candidates, supplement.candidates...)
	}

	// Enrichment
	enriched, allStorageFailed := o.enrich(ctx, candidates, dc, count)

	if len(enriched) == 0 && allStorageFailed && len(candidates) > 0 {
		return &models.RecommendationResponse{
			Success:         true,
			Recommendations: []models.RankedCandidate{},
			Message:         "Recommendations temporarily unavailable",
			GeneratedAt:     time.Now(),
		}, nil
	}

	// PopularityFallback
	if len(enriched) == 0 {
		o.metrics.Fallback()
		return o.popularityFallback(ctx, count, "Showing popular tables"), nil
	}

	generatedAt := time.Now()

	// CacheWrite
	if !isGuest {
		entry := &models.RecommendationCacheEntry{
			UserID:          req.UserID,
			Recommendations: enriched,
			Context:         dc,
			GeneratedAt:     generatedAt,
			ExpiresAt:       generatedAt.Add(o.cfg.CacheTTL),
		}
		if err := o.recs.UpsertRecommendation(ctx, entry); err != nil {
			o.logger.WithError(err).WithField("user_id", req.UserID).Warn("Failed to cache recommendations")
		}
	}

	return &models.RecommendationResponse{
		Success:         true,
		Recommendations: enriched,
		GeneratedAt:     generatedAt,
	}, nil
}

// checkCache returns a reusable cache entry or nil.
func (o *RecommendationOrchestrator) checkCache(
	ctx context.Context,
	userID uuid.UUID,
	dc models.DiningContext,
) *models.RecommendationCacheEntry {
	entry, err := o.recs.GetCachedRecommendation(ctx, userID, dc.Occasion, dc.PartySize)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			o.logger.WithError(err).Debug("Cache lookup failed")
		}
		return nil
	}
	if entry == nil || entry.Expired(time.Now()) {
		return nil
	}
	return entry
}

// runStage executes a cascade stage, converting both errors and panics into
// an empty, logged contribution.
func (o *RecommendationOrchestrator) runStage(name string, fn func() ([]models.RankedCandidate, error)) (result stageResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.WithFields(logrus.Fields{"stage": name, "panic": r}).Error("Recommendation stage panicked")
			o.metrics.Stage(name, "error")
			result = stageResult{outcome: stageError}
		}
	}()

	candidates, err := fn()
	switch {
	case err != nil:
		o.logger.WithError(err).WithField("stage", name).Warn("Recommendation stage failed")
		o.metrics.Stage(name, "error")
		return stageResult{outcome: stageError, err: err}
	case len(candidates) == 0:
		o.metrics.Stage(name, "empty")
		return stageResult{outcome: stageEmpty}
	default:
		o.metrics.Stage(name, "ok")
		return stageResult{outcome: stageOk, candidates: candidates}
	}
}

// smartMatchSupplement fills remaining slots from a capacity/ambiance
// filtered pool of available tables, falling back to all available tables
// when the filtered pool is empty.
func (o *RecommendationOrchestrator) smartMatchSupplement(
	ctx context.Context,
	dc models.DiningContext,
	existing []models.RankedCandidate,
	count int,
	usingML bool,
) ([]models.RankedCandidate, error) {
	filter := models.TableFilter{
		MinCapacity: max(1, dc.PartySize-1),
		MaxCapacity: dc.PartySize + 2,
		Ambiances:   occasionAmbiances[dc.Occasion],
	}

	pool, err := o.tables.QueryAvailableTables(ctx, filter, 0)
	if err != nil || len(pool) == 0 {
		pool, err = o.tables.QueryAvailableTables(ctx, models.TableFilter{}, 0)
		if err != nil {
			return nil, err
		}
	}

	present := make(map[uuid.UUID]bool, len(existing))
	for _, c := range existing {
		present[c.TableID] = true
	}

	needed := count - len(existing)
	var additional []models.Table
	for _, t := range pool {
		if present[t.ID] {
			continue
		}
		additional = append(additional, t)
		if len(additional) == needed {
			break
		}
	}

	reason := models.ReasonPopularity
	if usingML {
		reason = models.ReasonSmartMatching
	}

	results := make([]models.RankedCandidate, 0, len(additional))
	n := len(additional)
	for i, t := range additional {
		score := float64(n-i) / float64(n)
		if usingML {
			// Supplement scores sit below genuine hybrid scores.
			score = 0.6 + 0.2*float64(n-i)/float64(n)
		}
		results = append(results, models.RankedCandidate{
			TableID:     t.ID,
			Score:       score,
			Reason:      reason,
			Confidence:  models.ConfidenceMedium,
			Rank:        len(existing) + i + 1,
			Explanation: genericExplanation(dc.Occasion),
		})
	}
	return results, nil
}

// enrich resolves candidate ids to full table records, drops unresolvable
// candidates, synthesizes explanations and reassigns contiguous ranks. The
// second return value reports that every drop was a storage failure.
func (o *RecommendationOrchestrator) enrich(
	ctx context.Context,
	candidates []models.RankedCandidate,
	dc models.DiningContext,
	count int,
) ([]models.RankedCandidate, bool) {
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	var enriched []models.RankedCandidate
	storageFailures := 0

	for _, c := range candidates {
		table, err := o.tables.GetTableByID(ctx, c.TableID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				storageFailures++
				o.logger.WithError(err).WithField("table_id", c.TableID).Warn("Failed to resolve recommended table")
			}
			continue
		}

		factors := explanationFactors(table, dc)

		confidence := c.Confidence
		if confidence == "" {
			confidence = models.ConfidenceMedium
			if len(factors) >= 2 {
				confidence = models.ConfidenceHigh
			}
		}

		enriched = append(enriched, models.RankedCandidate{
			TableID:     table.ID,
			Score:       c.Score,
			Reason:      c.Reason,
			Confidence:  confidence,
			Rank:        len(enriched) + 1,
			Explanation: synthesizeExplanation(factors, dc.Occasion),
			Table:       table,
			ContextFactors: &models.ContextFactors{
				Occasion:        dc.Occasion,
				TimePreference:  dc.TimeSlot,
				PartySize:       dc.PartySize,
				Ambiance:        table.Ambiance,
				Location:        table.Location,
				MatchingFactors: factors,
			},
		})
	}

	return enriched, storageFailures > 0 && storageFailures == len(candidates)
}

// popularityFallback returns the top available tables by rating and booking
// count. Never fails: an empty table set yields an empty, explained result.
func (o *RecommendationOrchestrator) popularityFallback(
	ctx context.Context,
	count int,
	message string,
) *models.RecommendationResponse {
	resp := &models.RecommendationResponse{
		Success:     true,
		Fallback:    true,
		GeneratedAt: time.Now(),
	}

	popular, err := o.tables.QueryAvailableTables(ctx, models.TableFilter{}, count)
	if err != nil {
		o.logger.WithError(err).Warn("Popularity fallback storage query failed")
	}
	if len(popular) == 0 {
		resp.Recommendations = []models.RankedCandidate{}
		resp.Message = "No tables available at the moment"
		return resp
	}

	n := len(popular)
	recs := make([]models.RankedCandidate, 0, n)
	for i := range popular {
		table := popular[i]
		recs = append(recs, models.RankedCandidate{
			TableID:     table.ID,
			Score:       float64(n-i) / float64(n),
			Reason:      models.ReasonPopularity,
			Confidence:  models.ConfidenceMedium,
			Rank:        i + 1,
			Explanation: "Popular table with high ratings",
			Table:       &table,
		})
	}

	resp.Recommendations = recs
	resp.Message = message
	return resp
}

// trackWindow bounds how far back Track* looks for the originating
// recommendation.
const trackWindow = 24 * time.Hour

// TrackClick appends a click event to the most recent recommendation entry
// containing the table and returns the table's original rank. A zero rank
// means no recent recommendation mentioned the table.
func (o *RecommendationOrchestrator) TrackClick(ctx context.Context, userID, tableID uuid.UUID) (int, error) {
	entry, rank := o.findRecommendedTable(ctx, userID, tableID)
	if entry == nil {
		return 0, nil
	}

	event := models.RecommendationEvent{TableID: tableID, At: time.Now(), Rank: rank}
	if err := o.recs.AppendClicked(ctx, entry, event); err != nil {
		return 0, err
	}
	return rank, nil
}

// TrackReservation appends a reservation event, stamped with the original
// rank, to the most recent recommendation entry containing the table.
func (o *RecommendationOrchestrator) TrackReservation(ctx context.Context, userID, tableID uuid.UUID, reservationID *uuid.UUID) (int, error) {
	entry, rank := o.findRecommendedTable(ctx, userID, tableID)
	if entry == nil {
		return 0, nil
	}

	event := models.RecommendationEvent{
		TableID:       tableID,
		At:            time.Now(),
		Rank:          rank,
		ReservationID: reservationID,
	}
	if err := o.recs.AppendReserved(ctx, entry, event); err != nil {
		return 0, err
	}
	return rank, nil
}

func (o *RecommendationOrchestrator) findRecommendedTable(
	ctx context.Context,
	userID, tableID uuid.UUID,
) (*models.RecommendationCacheEntry, int) {
	entries, err := o.recs.ListRecommendationsByUser(ctx, userID)
	if err != nil {
		o.logger.WithError(err).WithField("user_id", userID).Warn("Failed to list recommendations for tracking")
		return nil, 0
	}

	cutoff := time.Now().Add(-trackWindow)
	var latest *models.RecommendationCacheEntry
	rank := 0

	for i := range entries {
		entry := &entries[i]
		if entry.GeneratedAt.Before(cutoff) {
			continue
		}
		for _, rec := range entry.Recommendations {
			if rec.TableID == tableID {
				if latest == nil || entry.GeneratedAt.After(latest.GeneratedAt) {
					latest = entry
					rank = rec.Rank
				}
				break
			}
		}
	}

	return latest, rank
}
