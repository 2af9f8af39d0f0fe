package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suyogxd/vidtube/internal/container"
	"github.com/suyogxd/vidtube/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Metrics endpoint (expvar), rate-limited per IP; private/loopback
	// callers (health probes, internal scrapes) bypass the limiter
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
