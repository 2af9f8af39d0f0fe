package handlers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/suyogxd/vidtube/internal/application"
	"github.com/suyogxd/vidtube/pkg/response"
	"github.com/suyogxd/vidtube/pkg/validation"
)

type VideoHandler struct {
	Videos  *userapp.VideoService
	Logger  *logrus.Logger
	TempDir string
}

func NewVideoHandler(videos *userapp.VideoService, logger *logrus.Logger, tempDir string) *VideoHandler {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &VideoHandler{Videos: videos, Logger: logger, TempDir: tempDir}
}

type publishRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
}

// Publish POST /api/videos (auth, multipart)
func (h *VideoHandler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "title is required", validation.ToDetails(err))
		return
	}

	videoFH, err := c.FormFile("videoFile")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "video file is required", nil)
		return
	}
	thumbFH, err := c.FormFile("thumbnail")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "thumbnail is required", nil)
		return
	}

	videoPath, videoCT, err := stageUpload(c, videoFH, h.TempDir)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to stage video file", nil)
		return
	}
	thumbPath, thumbCT, err := stageUpload(c, thumbFH, h.TempDir)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to stage thumbnail", nil)
		return
	}

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)
	v, err := h.Videos.Publish(c.Request.Context(), userapp.PublishInput{
		OwnerID:              c.GetString("userID"),
		Title:                req.Title,
		Description:          req.Description,
		Duration:             duration,
		VideoPath:            videoPath,
		VideoContentType:     videoCT,
		ThumbnailPath:        thumbPath,
		ThumbnailContentType: thumbCT,
	})
	if err != nil {
		if err == userapp.ErrUploadFailed {
			response.Error[any](c, http.StatusBadRequest, "video upload failed", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to publish video", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":            v.ID,
		"video_url":     v.VideoURL,
		"thumbnail_url": v.ThumbnailURL,
		"title":         v.Title,
		"description":   v.Description,
		"duration":      v.Duration,
		"views":         v.Views,
		"created_at":    v.CreatedAt,
	}, "video published successfully", nil)
}

// Get GET /api/videos/:id (public)
func (h *VideoHandler) Get(c *gin.Context) {
	vo, err := h.Videos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == userapp.ErrVideoNotFound {
			response.Error[any](c, http.StatusNotFound, "video not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load video", nil)
		return
	}
	response.Success(c, http.StatusOK, vo, "video", nil)
}

// Watch POST /api/videos/:id/watch (auth) records the watch and bumps views.
func (h *VideoHandler) Watch(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Videos.Watch(c.Request.Context(), uid, c.Param("id")); err != nil {
		if err == userapp.ErrVideoNotFound {
			response.Error[any](c, http.StatusNotFound, "video not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to record watch", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"watched": true}, "watch recorded", nil)
}
