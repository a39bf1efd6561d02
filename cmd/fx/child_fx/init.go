package child_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"pottypal/internal/api/controllers"
	"pottypal/internal/repositories"
	"pottypal/internal/services"
	"pottypal/pkg/realtime"
)

var Module = fx.Provide(
	provideChildRepo, provideChildService, provideChildController)

func provideChildRepo(db *gorm.DB) repositories.ChildRepository {
	return repositories.NewChildRepository(db)
}

func provideChildService(childRepo repositories.ChildRepository, hub *realtime.Hub) services.ChildServiceInterface {
	return services.NewChildService(childRepo, hub)
}

func provideChildController(childService services.ChildServiceInterface) *controllers.ChildController {
	return controllers.NewChildController(childService)
}
