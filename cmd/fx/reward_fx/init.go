package reward_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"pottypal/internal/api/controllers"
	"pottypal/internal/repositories"
	"pottypal/internal/services"
	"pottypal/pkg/realtime"
)

var Module = fx.Provide(
	provideRewardRepo, provideRewardService, provideRewardController)

func provideRewardRepo(db *gorm.DB) repositories.RewardRepository {
	return repositories.NewRewardRepository(db)
}

func provideRewardService(rewardRepo repositories.RewardRepository, childRepo repositories.ChildRepository, hub *realtime.Hub) services.RewardServiceInterface {
	return services.NewRewardService(rewardRepo, childRepo, hub)
}

func provideRewardController(rewardService services.RewardServiceInterface) *controllers.RewardController {
	return controllers.NewRewardController(rewardService)
}
