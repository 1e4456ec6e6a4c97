package userRepo

import (
	"context"

	"lawease/models"
)

// UserRepository defines persistence for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetTokenHash(ctx context.Context, id, hash string) error
	SetRole(ctx context.Context, id string, role models.Role) error
}
