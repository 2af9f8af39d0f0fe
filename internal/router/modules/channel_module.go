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

type ChannelModule struct {
	Handler *handlers.ChannelHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewChannelModule(h *handlers.ChannelHandler, jwt *helpers.JWTManager, users repo.UserRepository) *ChannelModule {
	return &ChannelModule{Handler: h, JWT: jwt, Users: users}
}

func (m *ChannelModule) Register(rg *gin.RouterGroup) {
	profileLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	// Viewer-aware public endpoint: auth is optional, anonymous viewers see
	// is_subscribed=false.
	rg.POST("/channels/:username", profileLimiter, middleware.OptionalAuth(m.JWT), m.Handler.Profile)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT, m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/channels/search", m.Handler.Search)
		auth.POST("/channels/:username/subscribe", m.Handler.Subscribe)
		auth.DELETE("/channels/:username/subscribe", m.Handler.Unsubscribe)
	}
}
