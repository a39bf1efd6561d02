package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pottypal/internal/models/request_models"
	"pottypal/internal/services"
	"pottypal/pkg/utils"
)

type CaregiverController struct {
	caregiverService services.CaregiverServiceInterface
}

func NewCaregiverController(caregiverService services.CaregiverServiceInterface) *CaregiverController {
	return &CaregiverController{
		caregiverService: caregiverService,
	}
}

func (ctl *CaregiverController) Add(c *gin.Context) {
	var req request_models.CaregiverInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	caregiver, err := ctl.caregiverService.AddCaregiver(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, caregiver, "Caregiver added")
}

func (ctl *CaregiverController) List(c *gin.Context) {
	caregivers, err := ctl.caregiverService.ListCaregivers(c.Request.Context(), c.GetString("user_id"), c.Param("childId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, caregivers, "Caregivers fetched")
}

func (ctl *CaregiverController) Update(c *gin.Context) {
	var req request_models.CaregiverInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	caregiver, err := ctl.caregiverService.UpdateCaregiver(c.Request.Context(), c.GetString("user_id"), c.GetString("caregiver_child_id"), c.Param("caregiverId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, caregiver, "Caregiver updated")
}

func (ctl *CaregiverController) ToggleNotifications(c *gin.Context) {
	caregiver, err := ctl.caregiverService.ToggleNotifications(c.Request.Context(), c.GetString("user_id"), c.GetString("caregiver_child_id"), c.Param("caregiverId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, caregiver, "Notification preference toggled")
}

// Remove deletes a caregiver. Removing the last caregiver of a child is
// rejected with 409.
func (ctl *CaregiverController) Remove(c *gin.Context) {
	if err := ctl.caregiverService.RemoveCaregiver(c.Request.Context(), c.GetString("user_id"), c.GetString("caregiver_child_id"), c.Param("caregiverId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Caregiver removed")
}
