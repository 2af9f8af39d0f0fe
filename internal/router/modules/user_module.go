package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suyogxd/vidtube/internal/container"
	repo "github.com/suyogxd/vidtube/internal/domain/repository"
	handlers "github.com/suyogxd/vidtube/internal/interface/http"
	"github.com/suyogxd/vidtube/internal/interface/middleware"
	"github.com/suyogxd/vidtube/pkg/helpers"
)

// UserModule wires account and auth-lifecycle routes.
// Public: POST /users/register, /users/login, /users/refresh-token
// Protected: POST /users/logout, /users/change-password, GET /users/me, /users/history

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, users repo.UserRepository) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)
	rg.POST("/users/refresh-token", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT, m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/users/logout", m.Handler.Logout)
		auth.POST("/users/change-password", m.Handler.ChangePassword)
		auth.GET("/users/me", m.Handler.Me)
		auth.GET("/users/history", m.Handler.History)
	}
}
