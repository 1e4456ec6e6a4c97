package handlers

import (
	"net/http"

	"lawease/middleware"
	"lawease/models"
	"lawease/services/review"
	"lawease/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	ReviewService review.ReviewService
}

func NewReviewHandler(rs review.ReviewService) *ReviewHandler {
	return &ReviewHandler{ReviewService: rs}
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	var req models.SubmitReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.ReviewService.Submit(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, gin.H{"review": r})
}

func (h *ReviewHandler) ListForLawyer(c *gin.Context) {
	reviews, err := h.ReviewService.ListForLawyer(c.Request.Context(), c.Param("lawyerId"), 0)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"reviews": reviews})
}
