package middleware

import (
	"hardwarehub-be/internal/apperr"
	"hardwarehub-be/internal/auth"
	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/response"
	"hardwarehub-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrUnauthenticated = apperr.Unauthorized("authentication required")
	ErrAdminOnly       = apperr.Forbidden("forbidden: admin only")
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate attaches the caller identity when a valid token is present.
// Requests without a token pass through anonymously; a present but invalid
// token is rejected so the client can clear it and re-login.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			response.Error(c, apperr.Unauthorized("invalid or expired token"))
			return
		}

		ctx := utils.WithIdentity(c.Request.Context(), utils.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		ctx = logger.WithFields(ctx, zap.Uint("user_id", claims.UserID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			response.Error(c, ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, ok := utils.GetUserIDFromContext(ctx); !ok {
			response.Error(c, ErrUnauthenticated)
			return
		}
		if !utils.IsAdmin(ctx) {
			response.Error(c, ErrAdminOnly)
			return
		}
		c.Next()
	}
}
