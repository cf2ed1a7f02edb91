package services

import (
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/config"
	"github.com/mirovate/tablematch/internal/database"
	"github.com/mirovate/tablematch/internal/messaging"
	"github.com/mirovate/tablematch/internal/storage"
)

type Services struct {
	Health          *HealthService
	Dataset         *DatasetLoader
	Interaction     *InteractionService
	Orchestrator    *RecommendationOrchestrator
	Tables          TableStore
	Interactions    InteractionStore
	Users           UserStore
	Recommendations RecommendationStore
	Producer        *messaging.InteractionProducer
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database) (*Services, error) {
	tableStore := storage.NewTableStore(db.PG, logger)
	interactionStore := storage.NewInteractionStore(db.PG, logger)
	userStore := storage.NewUserStore(db.PG, logger)
	recommendationStore := storage.NewRecommendationStore(db.Redis, logger)

	loader := NewDatasetLoader(tableStore, userStore, interactionStore, &cfg.Engine, logger)
	metrics := NewEngineMetrics(logger)
	ranker := NewHybridRanker(cfg.Engine.CollaborativeWeight, cfg.Engine.ContentWeight)

	producer := messaging.NewInteractionProducer(&cfg.Kafka, logger)

	orchestrator := NewRecommendationOrchestrator(
		loader, ranker, tableStore, recommendationStore, metrics, &cfg.Engine, logger,
	)
	interactionService := NewInteractionService(interactionStore, tableStore, producer, logger)
	healthService := NewHealthService(cfg, logger, db, loader)

	return &Services{
		Health:          healthService,
		Dataset:         loader,
		Interaction:     interactionService,
		Orchestrator:    orchestrator,
		Tables:          tableStore,
		Interactions:    interactionStore,
		Users:           userStore,
		Recommendations: recommendationStore,
		Producer:        producer,
	}, nil
}
