package middleware

import (
	"context"
	"strings"

	userRepo "lawease/database/repository/user"
	"lawease/models"
	"lawease/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// TokenLookup reads and refreshes the cached hash of a user's active token.
type TokenLookup interface {
	Lookup(ctx context.Context, userID string) (string, bool, error)
	Store(ctx context.Context, userID, tokenHash string) error
}

// AuthMiddleware accepts a Bearer token or the session cookie. The token must
// be the user's current one: its hash is compared against the cached copy,
// falling back to the database on a cache miss.
func AuthMiddleware(users userRepo.UserRepository, cache TokenLookup, store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = sessionToken(c, store)
		}
		if tokenString == "" {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}
		hash := utils.HashToken(tokenString)
		ctx := c.Request.Context()

		if cache != nil {
			cached, found, err := cache.Lookup(ctx, claims.UserID)
			if err != nil {
				logger.Warn("auth cache lookup failed", zap.String("userID", claims.UserID), zap.Error(err))
			}
			if found {
				if cached != hash {
					abortUnauthorized(c, "Token has been revoked")
					return
				}
				setActor(c, claims.UserID, claims.Role)
				c.Next()
				return
			}
		}

		user, err := users.GetByID(ctx, claims.UserID)
		if err != nil || user.TokenHash == "" || user.TokenHash != hash {
			abortUnauthorized(c, "Token mismatch or user not found")
			return
		}
		if cache != nil {
			if err := cache.Store(ctx, user.ID, hash); err != nil {
				logger.Warn("failed to refresh auth cache", zap.String("userID", user.ID), zap.Error(err))
			}
		}
		setActor(c, user.ID, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func setActor(c *gin.Context, userID, role string) {
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, models.Role(role))
}

func abortUnauthorized(c *gin.Context, msg string) {
	utils.RespondError(c, utils.NewUnauthorized(msg))
	c.Abort()
}

// CurrentActor returns the authenticated caller, or an empty Actor.
func CurrentActor(c *gin.Context) models.Actor {
	userID := c.GetString(ctxUserID)
	role, _ := c.Get(ctxRole)
	r, _ := role.(models.Role)
	return models.Actor{UserID: userID, Role: r}
}

// RequireRole rejects callers whose role is not one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		utils.RespondError(c, utils.NewForbidden("You do not have permission to perform this action"))
		c.Abort()
	}
}
