package handlers

import (
	"net/http"

	"lawease/models"
	"lawease/services/contact"
	"lawease/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	ContactService contact.ContactService
}

func NewContactHandler(cs contact.ContactService) *ContactHandler {
	return &ContactHandler{ContactService: cs}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var msg models.ContactMessage
	if !bindJSON(c, &msg) {
		return
	}
	if _, err := h.ContactService.Submit(c.Request.Context(), msg); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, gin.H{"message": "Thanks for reaching out. We will get back to you soon."})
}
