package poi_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripsmith/internal/api/controllers"
	"tripsmith/internal/repositories"
	"tripsmith/internal/services"
	"tripsmith/pkg/utils"
)

var Module = fx.Provide(providePOIRepo, providePOIService, controllers.NewPOIController)

func providePOIRepo(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func providePOIService(poiRepo repositories.POIRepository, aiClient utils.AIClientInterface) services.POIServiceInterface {
	return services.NewPOIService(poiRepo, aiClient)
}
