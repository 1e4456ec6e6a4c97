package handlers

import (
	"net/http"

	"lawease/middleware"
	"lawease/services/lawyer"
	"lawease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	LawyerService lawyer.LawyerService
}

func NewAdminHandler(ls lawyer.LawyerService) *AdminHandler {
	return &AdminHandler{LawyerService: ls}
}

type verifyRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

// VerifyLawyer sets or clears the verified badge on a lawyer profile.
func (h *AdminHandler) VerifyLawyer(c *gin.Context) {
	var req verifyRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := middleware.CurrentActor(c)
	if err := h.LawyerService.Verify(c.Request.Context(), actor, c.Param("id"), *req.Verified); err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("lawyer verification updated",
		zap.String("lawyerID", c.Param("id")),
		zap.Bool("verified", *req.Verified),
		zap.String("adminID", actor.UserID))
	utils.RespondOK(c, http.StatusOK, gin.H{"lawyer_id": c.Param("id"), "verified": *req.Verified})
}
