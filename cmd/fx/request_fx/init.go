package request_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"pottypal/internal/api/controllers"
	"pottypal/internal/repositories"
	"pottypal/internal/services"
	"pottypal/pkg/realtime"
)

var Module = fx.Provide(
	provideRequestRepo, provideRequestService, provideRequestController)

func provideRequestRepo(db *gorm.DB) repositories.RequestRepository {
	return repositories.NewRequestRepository(db)
}

func provideRequestService(
	requestRepo repositories.RequestRepository,
	childRepo repositories.ChildRepository,
	caregiverRepo repositories.CaregiverRepository,
	mailService services.IMailService,
	hub *realtime.Hub,
) services.RequestServiceInterface {
	return services.NewRequestService(requestRepo, childRepo, caregiverRepo, mailService, hub)
}

func provideRequestController(requestService services.RequestServiceInterface) *controllers.RequestController {
	return controllers.NewRequestController(requestService)
}
