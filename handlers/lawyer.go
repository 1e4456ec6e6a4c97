package handlers

import (
	"net/http"

	"lawease/middleware"
	"lawease/models"
	"lawease/services/lawyer"
	"lawease/utils"

	"github.com/gin-gonic/gin"
)

type LawyerHandler struct {
	LawyerService lawyer.LawyerService
}

func NewLawyerHandler(ls lawyer.LawyerService) *LawyerHandler {
	return &LawyerHandler{LawyerService: ls}
}

// Search lists lawyers matching the query filters.
func (h *LawyerHandler) Search(c *gin.Context) {
	var criteria models.LawyerSearch
	if err := c.ShouldBindQuery(&criteria); err != nil {
		utils.RespondError(c, utils.NewValidation("Invalid search filters"))
		return
	}
	lawyers, err := h.LawyerService.Search(c.Request.Context(), criteria)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"lawyers": lawyers})
}

func (h *LawyerHandler) Get(c *gin.Context) {
	detail, err := h.LawyerService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"lawyer": detail.Profile, "reviews": detail.Reviews})
}

func (h *LawyerHandler) Onboard(c *gin.Context) {
	var input models.LawyerProfileInput
	if !bindJSON(c, &input) {
		return
	}
	profile, err := h.LawyerService.Onboard(c.Request.Context(), middleware.CurrentActor(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, gin.H{"lawyer": profile})
}

func (h *LawyerHandler) UpdateProfile(c *gin.Context) {
	var input models.LawyerProfileInput
	if !bindJSON(c, &input) {
		return
	}
	profile, err := h.LawyerService.UpdateProfile(c.Request.Context(), middleware.CurrentActor(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"lawyer": profile})
}
