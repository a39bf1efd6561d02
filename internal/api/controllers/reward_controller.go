package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"pottypal/internal/models/request_models"
	"pottypal/internal/services"
	"pottypal/pkg/utils"
)

type RewardController struct {
	rewardService services.RewardServiceInterface
}

func NewRewardController(rewardService services.RewardServiceInterface) *RewardController {
	return &RewardController{
		rewardService: rewardService,
	}
}

func (ctl *RewardController) Create(c *gin.Context) {
	var req request_models.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reward, err := ctl.rewardService.CreateReward(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reward, "Reward created")
}

func (ctl *RewardController) Update(c *gin.Context) {
	var req request_models.UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reward, err := ctl.rewardService.UpdateReward(c.Request.Context(), c.GetString("user_id"), c.GetString("caregiver_child_id"), c.Param("rewardId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reward, "Reward updated")
}

func (ctl *RewardController) Toggle(c *gin.Context) {
	reward, err := ctl.rewardService.ToggleReward(c.Request.Context(), c.GetString("user_id"), c.GetString("caregiver_child_id"), c.Param("rewardId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reward, "Reward toggled")
}

func (ctl *RewardController) Delete(c *gin.Context) {
	if err := ctl.rewardService.DeleteReward(c.Request.Context(), c.GetString("user_id"), c.GetString("caregiver_child_id"), c.Param("rewardId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Reward deleted")
}

// List returns the catalog. The child store passes active_only=true so
// hidden rewards never reach the redemption view.
func (ctl *RewardController) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	rewards, err := ctl.rewardService.ListRewards(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), activeOnly)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rewards, "Rewards fetched")
}

// Redeem godoc
// @Summary Redeem a reward
// @Description Spends points on an active reward; rejected if the balance is insufficient
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Router /rewards/{rewardId}/redeem [post]
func (ctl *RewardController) Redeem(c *gin.Context) {
	redemption, err := ctl.rewardService.Redeem(c.Request.Context(), c.GetString("user_id"), c.Param("rewardId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, redemption, "Reward redeemed")
}

func (ctl *RewardController) ListRedemptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	redemptions, err := ctl.rewardService.ListRedemptions(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, redemptions, "Redemptions fetched")
}
