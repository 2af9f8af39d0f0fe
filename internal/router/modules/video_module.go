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

type VideoModule struct {
	Handler *handlers.VideoHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewVideoModule(h *handlers.VideoHandler, jwt *helpers.JWTManager, users repo.UserRepository) *VideoModule {
	return &VideoModule{Handler: h, JWT: jwt, Users: users}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	getLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/videos/:id", getLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT, m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/videos", m.Handler.Publish)
		auth.POST("/videos/:id/watch", m.Handler.Watch)
	}
}
