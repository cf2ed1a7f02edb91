package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Interaction    *InteractionHandler
	User           *UserHandler
	Table          *TableHandler
	Admin          *AdminHandler
}

func New(logger *logrus.Logger, services *services.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Recommendation: NewRecommendationHandler(services.Orchestrator, services.Interaction, logger),
		Interaction:    NewInteractionHandler(logger, services.Interaction),
		User:           NewUserHandler(logger, services.Interaction, services.Recommendations, services.Tables),
		Table:          NewTableHandler(logger, services.Tables),
		Admin:          NewAdminHandler(logger, services.Dataset, services.Recommendations),
	}
}
