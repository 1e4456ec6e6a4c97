package handlers

import (
	"net/http"

	"lawease/middleware"
	"lawease/models"
	"lawease/services/mentor"
	"lawease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MentorHandler exposes the AI mentor consultation flow.
type MentorHandler struct {
	MentorService mentor.MentorService
}

func NewMentorHandler(ms mentor.MentorService) *MentorHandler {
	return &MentorHandler{MentorService: ms}
}

func (h *MentorHandler) Create(c *gin.Context) {
	var req models.CreateConsultationRequest
	if !bindJSON(c, &req) {
		return
	}
	consultation, err := h.MentorService.CreateConsultation(c.Request.Context(), middleware.CurrentActor(c), req.ProblemDescription)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, gin.H{"consultation": consultation})
}

func (h *MentorHandler) List(c *gin.Context) {
	consultations, err := h.MentorService.List(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"consultations": consultations})
}

func (h *MentorHandler) Get(c *gin.Context) {
	consultation, err := h.MentorService.Get(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"consultation": consultation})
}

// Analyze runs the LLM over the problem description. The consultation is
// returned even when analysis fails so the client can show its status.
func (h *MentorHandler) Analyze(c *gin.Context) {
	consultation, err := h.MentorService.AnalyzeLegalProblem(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		getLogger(c).Warn("legal analysis failed", zap.String("consultationID", c.Param("id")), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"consultation": consultation})
}

func (h *MentorHandler) VoiceSession(c *gin.Context) {
	session, err := h.MentorService.PrepareVoiceSession(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"session": session})
}

func (h *MentorHandler) Summarize(c *gin.Context) {
	var req models.SummarizeRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	consultation, err := h.MentorService.SummarizeConversation(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req.Transcript)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"consultation": consultation})
}
