package handlers

import (
	"net/http"

	"lawease/middleware"
	"lawease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadImage accepts a multipart "image" field and replaces the lawyer's
// profile picture.
func (h *LawyerHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxImageBytes+1<<20)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, utils.NewValidation("An image file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		getLogger(c).Error("failed to open uploaded file", zap.Error(err))
		utils.RespondError(c, utils.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	u, err := h.LawyerService.UploadImage(c.Request.Context(), middleware.CurrentActor(c), file)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"image_url": u.ImageURL})
}

func (h *LawyerHandler) DeleteImage(c *gin.Context) {
	if _, err := h.LawyerService.DeleteImage(c.Request.Context(), middleware.CurrentActor(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"message": "Profile image removed"})
}
