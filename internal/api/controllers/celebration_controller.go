package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pottypal/internal/models/request_models"
	"pottypal/internal/services"
	"pottypal/pkg/utils"
)

type CelebrationController struct {
	celebrationService services.CelebrationServiceInterface
}

func NewCelebrationController(celebrationService services.CelebrationServiceInterface) *CelebrationController {
	return &CelebrationController{
		celebrationService: celebrationService,
	}
}

// Message godoc
// @Summary Generate a celebration message
// @Description Returns a short celebratory sentence; falls back to a canned message on provider failure
// @Tags Celebrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /celebrations/message [post]
func (ctl *CelebrationController) Message(c *gin.Context) {
	var req request_models.CelebrationMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	message := ctl.celebrationService.GenerateMessage(c.Request.Context(), req.ChildName, req.RequestType, req.PointsEarned)

	utils.RespondSuccess(c, gin.H{"message": message}, "")
}
