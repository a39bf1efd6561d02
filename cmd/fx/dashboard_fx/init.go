package dashboard_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"pottypal/internal/api/controllers"
	"pottypal/internal/repositories"
	"pottypal/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService, provideDashboardController)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(dashboardRepo repositories.DashboardRepository, childRepo repositories.ChildRepository) services.DashboardServiceInterface {
	return services.NewDashboardService(dashboardRepo, childRepo)
}

func provideDashboardController(dashboardService services.DashboardServiceInterface) *controllers.DashboardController {
	return controllers.NewDashboardController(dashboardService)
}
