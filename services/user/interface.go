package user

import (
	"context"
	"time"

	userRepo "lawease/database/repository/user"
	"lawease/models"

	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, actor models.Actor) error
	Me(ctx context.Context, actor models.Actor) (*models.User, error)
}

// TokenCache mirrors the active token hash outside the database.
type TokenCache interface {
	Store(ctx context.Context, userID, tokenHash string) error
	Clear(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	repo     userRepo.UserRepository
	tokens   TokenCache
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewUserService builds the service. tokens may be nil when Redis is not
// available; the database copy of the token hash is then authoritative.
func NewUserService(repo userRepo.UserRepository, tokens TokenCache, tokenTTL time.Duration, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &DefaultUserService{repo: repo, tokens: tokens, tokenTTL: tokenTTL, logger: logger}
}
