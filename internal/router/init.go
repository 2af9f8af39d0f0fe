package router

import (
	userapp "github.com/suyogxd/vidtube/internal/application"
	"github.com/suyogxd/vidtube/internal/container"
	pginfra "github.com/suyogxd/vidtube/internal/infrastructure/postgres"
	handlers "github.com/suyogxd/vidtube/internal/interface/http"
	"github.com/suyogxd/vidtube/internal/router/modules"
)

// InitModules constructs repositories, services, and handlers from the
// container singletons and registers every feature module.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(container.GetPGPool())
	subs := pginfra.NewSubscriptionRepository(container.GetPGPool())
	videos := pginfra.NewVideoRepository(container.GetPGPool())

	userSvc := userapp.NewUserService(
		users,
		container.GetJWT(),
		container.GetMedia(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg,
	)
	channelSvc := userapp.NewChannelService(
		users,
		subs,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESChannelsIndex,
	)
	videoSvc := userapp.NewVideoService(videos, users, container.GetMedia(), container.GetLogger())

	userHandler := handlers.NewUserHandler(userSvc, channelSvc, videoSvc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure, cfg.UploadTempDir)
	channelHandler := handlers.NewChannelHandler(channelSvc, container.GetLogger())
	videoHandler := handlers.NewVideoHandler(videoSvc, container.GetLogger(), cfg.UploadTempDir)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT(), users))
	r.Add(modules.NewChannelModule(channelHandler, container.GetJWT(), users))
	r.Add(modules.NewVideoModule(videoHandler, container.GetJWT(), users))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
