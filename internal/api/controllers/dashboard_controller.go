package controllers

import (
	"github.com/gin-gonic/gin"
	"pottypal/internal/services"
	"pottypal/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

func (ctl *DashboardController) Get(c *gin.Context) {
	dashboard, err := ctl.dashboardService.GetDashboard(c.Request.Context(), c.GetString("user_id"), c.Param("childId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dashboard, "Dashboard fetched")
}
