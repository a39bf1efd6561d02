package caregiver_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"pottypal/internal/api/controllers"
	"pottypal/internal/repositories"
	"pottypal/internal/services"
)

var Module = fx.Provide(
	provideCaregiverRepo, provideCaregiverService, provideCaregiverController)

func provideCaregiverRepo(db *gorm.DB) repositories.CaregiverRepository {
	return repositories.NewCaregiverRepository(db)
}

func provideCaregiverService(caregiverRepo repositories.CaregiverRepository, childRepo repositories.ChildRepository) services.CaregiverServiceInterface {
	return services.NewCaregiverService(caregiverRepo, childRepo)
}

func provideCaregiverController(caregiverService services.CaregiverServiceInterface) *controllers.CaregiverController {
	return controllers.NewCaregiverController(caregiverService)
}
