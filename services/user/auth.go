package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"lawease/database"
	"lawease/models"
	"lawease/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = utils.NewUnauthorized("Invalid email or password")
	ErrEmailTaken         = utils.NewDomain("An account with this email already exists")
	ErrUserNotFound       = utils.NewNotFound("User not found")
)

// Register creates a CLIENT account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return nil, utils.NewValidation("Name and email are required")
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewInternal("failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternal("failed to hash password", err)
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleClient,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, utils.NewInternal("failed to create user", err)
	}

	s.logger.Info("user registered", zap.String("userID", user.ID))
	return s.issueToken(ctx, user)
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, utils.NewInternal("failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, user)
}

// issueToken signs a token and records its hash as the only valid one.
func (s *DefaultUserService) issueToken(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, string(user.Role), s.tokenTTL)
	if err != nil {
		return nil, utils.NewInternal("failed to sign token", err)
	}
	hash := utils.HashToken(token)
	if err := s.repo.SetTokenHash(ctx, user.ID, hash); err != nil {
		return nil, utils.NewInternal("failed to store token", err)
	}
	user.TokenHash = hash
	if s.tokens != nil {
		if err := s.tokens.Store(ctx, user.ID, hash); err != nil {
			s.logger.Warn("failed to cache token hash", zap.String("userID", user.ID), zap.Error(err))
		}
	}
	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenTTL),
		User:      user,
	}, nil
}

// Logout revokes the active token.
func (s *DefaultUserService) Logout(ctx context.Context, actor models.Actor) error {
	if !actor.Authenticated() {
		return utils.ErrUnauthenticated
	}
	if err := s.repo.SetTokenHash(ctx, actor.UserID, ""); err != nil && !errors.Is(err, database.ErrNotFound) {
		return utils.NewInternal("failed to revoke token", err)
	}
	if s.tokens != nil {
		if err := s.tokens.Clear(ctx, actor.UserID); err != nil {
			s.logger.Warn("failed to clear cached token", zap.String("userID", actor.UserID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultUserService) Me(ctx context.Context, actor models.Actor) (*models.User, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	user, err := s.repo.GetByID(ctx, actor.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, utils.NewInternal("failed to load user", err)
	}
	return user, nil
}
