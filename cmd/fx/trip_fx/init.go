package trip_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripsmith/internal/api/controllers"
	"tripsmith/internal/repositories"
	"tripsmith/internal/services"
	"tripsmith/pkg/search"
	"tripsmith/pkg/utils"
)

var Module = fx.Provide(
	provideTripRepo,
	providePlannerService,
	provideReviewerService,
	provideDeltaApplier,
	provideOrchestrator,
	provideTripService,
	controllers.NewTripController,
)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func providePlannerService(aiClient utils.AIClientInterface, poiRepo repositories.POIRepository) services.PlannerServiceInterface {
	return services.NewPlannerService(aiClient, poiRepo)
}

func provideReviewerService(aiClient utils.AIClientInterface, searchClient search.Client) services.ReviewerServiceInterface {
	return services.NewReviewerService(aiClient, searchClient)
}

func provideDeltaApplier() services.DeltaApplierInterface {
	return services.NewDeltaService()
}

func provideOrchestrator(
	planner services.PlannerServiceInterface,
	reviewer services.ReviewerServiceInterface,
	applier services.DeltaApplierInterface,
) services.OrchestratorServiceInterface {
	return services.NewOrchestratorService(planner, reviewer, applier)
}

func provideTripService(orchestrator services.OrchestratorServiceInterface, tripRepo repositories.TripRepository) services.TripServiceInterface {
	maxIterations := 3
	if raw := os.Getenv("MAX_REVIEW_ITERATIONS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			maxIterations = parsed
		}
	}
	return services.NewTripService(orchestrator, tripRepo, maxIterations)
}
