package handlers

import (
	"net/http"

	"lawease/middleware"
	"lawease/models"
	"lawease/services/user"
	"lawease/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type AuthHandler struct {
	UserService  user.UserService
	SessionStore sessions.Store
}

func NewAuthHandler(us user.UserService, store sessions.Store) *AuthHandler {
	return &AuthHandler{UserService: us, SessionStore: store}
}

// respondWithSession sets the session cookie alongside the JSON token.
func (h *AuthHandler) respondWithSession(c *gin.Context, status int, resp *models.AuthResponse) {
	if h.SessionStore != nil {
		if err := middleware.SaveSessionToken(c, h.SessionStore, resp.Token); err != nil {
			getLogger(c).Warn("failed to save session cookie", zap.Error(err))
		}
	}
	utils.RespondOK(c, status, gin.H{
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       resp.User,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context(), middleware.CurrentActor(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	if h.SessionStore != nil {
		if err := middleware.ClearSession(c, h.SessionStore); err != nil {
			getLogger(c).Warn("failed to clear session cookie", zap.Error(err))
		}
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.UserService.Me(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"user": u})
}
