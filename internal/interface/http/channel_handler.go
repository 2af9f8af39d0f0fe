package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/suyogxd/vidtube/internal/application"
	"github.com/suyogxd/vidtube/pkg/response"
)

type ChannelHandler struct {
	Channels *userapp.ChannelService
	Logger   *logrus.Logger
}

func NewChannelHandler(channels *userapp.ChannelService, logger *logrus.Logger) *ChannelHandler {
	return &ChannelHandler{Channels: channels, Logger: logger}
}

// Profile POST /api/channels/:username (optional auth). Anonymous viewers
// get is_subscribed=false.
func (h *ChannelHandler) Profile(c *gin.Context) {
	username := c.Param("username")
	viewerID := c.GetString("userID")

	p, err := h.Channels.Profile(c.Request.Context(), username, viewerID)
	if err != nil {
		if err == userapp.ErrChannelNotFound {
			response.Error[any](c, http.StatusNotFound, "channel does not exist", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load channel profile", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "channel profile fetched successfully", nil)
}

// Subscribe POST /api/channels/:username/subscribe (auth)
func (h *ChannelHandler) Subscribe(c *gin.Context) {
	viewerID := c.GetString("userID")
	err := h.Channels.Subscribe(c.Request.Context(), viewerID, c.Param("username"))
	if err != nil {
		switch err {
		case userapp.ErrChannelNotFound:
			response.Error[any](c, http.StatusNotFound, "channel does not exist", nil)
		case userapp.ErrSelfSubscription:
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "failed to subscribe", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"subscribed": true}, "subscribed", nil)
}

// Unsubscribe DELETE /api/channels/:username/subscribe (auth)
func (h *ChannelHandler) Unsubscribe(c *gin.Context) {
	viewerID := c.GetString("userID")
	err := h.Channels.Unsubscribe(c.Request.Context(), viewerID, c.Param("username"))
	if err != nil {
		if err == userapp.ErrChannelNotFound {
			response.Error[any](c, http.StatusNotFound, "channel does not exist", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to unsubscribe", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"subscribed": false}, "unsubscribed", nil)
}

// Search GET /api/channels/search?q=&size= (auth)
func (h *ChannelHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Channels.SearchChannels(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "channels", gin.H{"count": len(hits)})
}
