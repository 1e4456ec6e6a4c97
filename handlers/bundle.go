package handlers

import (
	userRepo "lawease/database/repository/user"
	"lawease/middleware"

	"github.com/gorilla/sessions"
)

// HandlerBundle groups all endpoint handlers and what the auth middleware needs.
type HandlerBundle struct {
	UserRepo     userRepo.UserRepository
	TokenCache   middleware.TokenLookup
	SessionStore sessions.Store

	Auth    *AuthHandler
	Lawyer  *LawyerHandler
	Booking *BookingHandler
	Review  *ReviewHandler
	Mentor  *MentorHandler
	Contact *ContactHandler
	Admin   *AdminHandler
}
