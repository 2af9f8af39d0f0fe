package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	repo "github.com/suyogxd/vidtube/internal/domain/repository"
	"github.com/suyogxd/vidtube/pkg/helpers"
	"github.com/suyogxd/vidtube/pkg/response"
)

const CtxUserIDKey = "userID"

// tokenFrom pulls the access token from the cookie or a bearer header.
func tokenFrom(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Auth validates the access token and resolves the identity: the Redis
// session hash is the fast path, the user store the fallback. A valid token
// whose user no longer exists is rejected.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}

		if rdb != nil {
			key := "user:session:" + claims.UserID
			if data, rErr := rdb.HGetAll(c.Request.Context(), key).Result(); rErr == nil && len(data) > 0 {
				c.Set(CtxUserIDKey, data["user_id"])
				c.Set("userName", data["username"])
				c.Set("userEmail", data["email"])
				c.Next()
				return
			}
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			} else {
				response.Error[any](c, http.StatusInternalServerError, "failed to resolve user", nil)
			}
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set("userName", u.Username)
		c.Set("userEmail", u.Email)
		c.Next()
	}
}

// OptionalAuth sets the user identity when a valid access token is present
// but never rejects the request. Used by viewer-aware public endpoints.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFrom(c); token != "" {
			if claims, err := jwt.ParseAccessToken(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}
