package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pottypal/internal/services"
	"pottypal/pkg/utils"
)

type UploadController struct {
	uploadService services.UploadServiceInterface
}

func NewUploadController(uploadService services.UploadServiceInterface) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

// RewardImage godoc
// @Summary Upload a reward image
// @Description Accepts a multipart image and returns its public URL
// @Tags Uploads
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Router /uploads/reward-image [post]
func (ctl *UploadController) RewardImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read file")
		return
	}
	defer file.Close()

	url, err := ctl.uploadService.UploadRewardImage(
		c.Request.Context(),
		c.GetString("user_id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	utils.RespondSuccess(c, gin.H{"url": url}, "Image uploaded")
}
