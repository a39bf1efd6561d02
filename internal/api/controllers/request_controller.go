package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"pottypal/internal/models/request_models"
	"pottypal/internal/services"
	"pottypal/pkg/utils"
)

type RequestController struct {
	requestService services.RequestServiceInterface
}

func NewRequestController(requestService services.RequestServiceInterface) *RequestController {
	return &RequestController{
		requestService: requestService,
	}
}

// Create godoc
// @Summary Create a bathroom request
// @Description Child signals a pee or poop request; rejected while one is pending
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /children/{childId}/requests [post]
func (ctl *RequestController) Create(c *gin.Context) {
	var req request_models.CreateBathroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	request, err := ctl.requestService.CreateRequest(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), req.RequestType)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, request, "Request created")
}

// Complete resolves a pending request and awards points. A second
// resolution attempt on the same request returns 409.
func (ctl *RequestController) Complete(c *gin.Context) {
	var req request_models.CompleteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	request, err := ctl.requestService.CompleteRequest(c.Request.Context(), c.GetString("user_id"), c.GetString("caregiver_child_id"), c.Param("requestId"), req.PointsToAward, req.CompletedBy)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, request, "Request completed")
}

func (ctl *RequestController) Cancel(c *gin.Context) {
	request, err := ctl.requestService.CancelRequest(c.Request.Context(), c.GetString("user_id"), c.GetString("caregiver_child_id"), c.Param("requestId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, request, "Request cancelled")
}

func (ctl *RequestController) GetPending(c *gin.Context) {
	request, err := ctl.requestService.GetPendingRequest(c.Request.Context(), c.GetString("user_id"), c.Param("childId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, request, "Pending request fetched")
}

func (ctl *RequestController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	requests, err := ctl.requestService.ListRequests(c.Request.Context(), c.GetString("user_id"), c.Param("childId"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, requests, "Requests fetched")
}
