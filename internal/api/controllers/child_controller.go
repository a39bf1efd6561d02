package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pottypal/internal/models/request_models"
	"pottypal/internal/services"
	"pottypal/pkg/utils"
)

type ChildController struct {
	childService services.ChildServiceInterface
}

func NewChildController(childService services.ChildServiceInterface) *ChildController {
	return &ChildController{
		childService: childService,
	}
}

// Onboard godoc
// @Summary Onboard a child
// @Description Create a child profile with its caregiver roster and passcode
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /children [post]
func (ctl *ChildController) Onboard(c *gin.Context) {
	var req request_models.OnboardChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	child, err := ctl.childService.Onboard(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, child, "Child created successfully")
}

func (ctl *ChildController) List(c *gin.Context) {
	children, err := ctl.childService.ListChildren(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, children, "Children fetched successfully")
}

func (ctl *ChildController) Get(c *gin.Context) {
	child, err := ctl.childService.GetChild(c.Request.Context(), c.GetString("user_id"), c.Param("childId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, child, "Child fetched successfully")
}

// EnterCaregiverMode verifies the 4-digit passcode and returns a
// caregiver-mode token scoped to this child.
func (ctl *ChildController) EnterCaregiverMode(c *gin.Context) {
	var req request_models.VerifyPasscodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := ctl.childService.VerifyPasscode(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), req.Passcode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"token": token}, "Caregiver mode enabled")
}

func (ctl *ChildController) ChangePasscode(c *gin.Context) {
	var req request_models.ChangePasscodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := ctl.childService.ChangePasscode(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), req.NewPasscode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Passcode changed successfully")
}

// AdjustPoints is the caregiver's manual balance override.
func (ctl *ChildController) AdjustPoints(c *gin.Context) {
	var req request_models.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TotalPoints == nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	child, err := ctl.childService.SetPoints(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), *req.TotalPoints)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, child, "Points updated successfully")
}

// AddPoints applies a caregiver bonus or deduction relative to the
// current balance.
func (ctl *ChildController) AddPoints(c *gin.Context) {
	var req request_models.AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Points == nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	child, err := ctl.childService.AddPoints(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), *req.Points)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, child, "Points updated successfully")
}
