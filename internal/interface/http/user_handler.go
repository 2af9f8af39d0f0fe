package handlers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	userapp "github.com/suyogxd/vidtube/internal/application"
	"github.com/suyogxd/vidtube/pkg/helpers"
	"github.com/suyogxd/vidtube/pkg/response"
	"github.com/suyogxd/vidtube/pkg/validation"
)

// UserHandler covers registration, the auth lifecycle, account endpoints,
// and the watch-history projection.
type UserHandler struct {
	Users    *userapp.UserService
	Channels *userapp.ChannelService
	Videos   *userapp.VideoService
	Logger   *logrus.Logger
	Cookies  *helpers.Manager
	TempDir  string
}

func NewUserHandler(users *userapp.UserService, channels *userapp.ChannelService, videos *userapp.VideoService, logger *logrus.Logger, cookieDomain string, cookieSecure bool, tempDir string) *UserHandler {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &UserHandler{
		Users:    users,
		Channels: channels,
		Videos:   videos,
		Logger:   logger,
		Cookies:  helpers.NewCookie(cookieDomain, cookieSecure),
		TempDir:  tempDir,
	}
}

// stageUpload copies a multipart file into the temp dir so the media gateway
// can consume (and then delete) it from a local path.
func stageUpload(c *gin.Context, fh *multipart.FileHeader, dir string) (path, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path = filepath.Join(dir, uuid.NewString()+ext)
	if err = c.SaveUploadedFile(fh, path); err != nil {
		return "", "", err
	}
	return path, fh.Header.Get("Content-Type"), nil
}

type registerRequest struct {
	Username string `form:"username" binding:"required,username"`
	Email    string `form:"email" binding:"required,email"`
	FullName string `form:"fullname" binding:"required"`
	Password string `form:"password" binding:"required,pwd"`
}

// Register POST /api/users/register (multipart)
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}

	avatarFH, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar is required", nil)
		return
	}
	avatarPath, avatarCT, err := stageUpload(c, avatarFH, h.TempDir)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to stage avatar", nil)
		return
	}

	in := userapp.RegisterInput{
		Username:          req.Username,
		Email:             req.Email,
		FullName:          req.FullName,
		Password:          req.Password,
		AvatarPath:        avatarPath,
		AvatarContentType: avatarCT,
	}
	if coverFH, cErr := c.FormFile("coverImage"); cErr == nil {
		if coverPath, coverCT, sErr := stageUpload(c, coverFH, h.TempDir); sErr == nil {
			in.CoverPath = coverPath
			in.CoverContentType = coverCT
		}
	}

	u, err := h.Users.Register(c.Request.Context(), in)
	if err != nil {
		switch err {
		case userapp.ErrAlreadyExists:
			response.Error[any](c, http.StatusConflict, err.Error(), nil)
		case userapp.ErrUploadFailed:
			response.Error[any](c, http.StatusBadRequest, "avatar is required", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "something went wrong while registering the user", nil)
		}
		return
	}

	// Best-effort: make the new channel searchable.
	_ = h.Channels.IndexChannel(c.Request.Context(), u)

	response.Success(c, http.StatusCreated, userapp.Sanitize(u), "user registered successfully", nil)
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		response.Error[any](c, http.StatusBadRequest, "username or email is required", nil)
		return
	}

	u, pair, err := h.Users.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		switch err {
		case userapp.ErrUserNotFound:
			response.Error[any](c, http.StatusNotFound, "user does not exist", nil)
		case userapp.ErrInvalidCredentials:
			response.Error[any](c, http.StatusUnauthorized, "invalid user credentials", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "something went wrong while logging in", nil)
		}
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"user":         userapp.Sanitize(u),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout POST /api/users/logout (auth)
func (h *UserHandler) Logout(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Users.Logout(c.Request.Context(), uid); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to log out", nil)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "user logged out", nil)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh POST /api/users/refresh-token. Accepts the token from the cookie
// or, failing that, from the request body.
func (h *UserHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshCookie)
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized request", nil)
		return
	}

	_, pair, err := h.Users.Refresh(c.Request.Context(), token)
	if err != nil {
		if err == userapp.ErrTokenExpired {
			response.Error[any](c, http.StatusUnauthorized, "refresh token is expired or used", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "access token refreshed", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

// ChangePassword POST /api/users/change-password (auth)
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	if err := h.Users.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		switch err {
		case userapp.ErrInvalidCredentials:
			response.Error[any](c, http.StatusUnauthorized, "invalid old password", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "failed to change password", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed successfully", nil)
}

// Me GET /api/users/me (auth)
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Users.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		if err == userapp.ErrUserNotFound {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load current user", nil)
		return
	}
	response.Success(c, http.StatusOK, userapp.Sanitize(u), "current user", nil)
}

type historyItem struct {
	Video gin.H `json:"video"`
	Owner gin.H `json:"owner"`
}

// History GET /api/users/history (auth)
func (h *UserHandler) History(c *gin.Context) {
	uid := c.GetString("userID")
	items, err := h.Videos.History(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load watch history", nil)
		return
	}
	out := make([]historyItem, 0, len(items))
	for _, it := range items {
		out = append(out, historyItem{
			Video: gin.H{
				"id":            it.Video.ID,
				"video_url":     it.Video.VideoURL,
				"thumbnail_url": it.Video.ThumbnailURL,
				"title":         it.Video.Title,
				"description":   it.Video.Description,
				"duration":      it.Video.Duration,
				"views":         it.Video.Views,
				"created_at":    it.Video.CreatedAt,
			},
			Owner: gin.H{
				"id":         it.Owner.ID,
				"username":   it.Owner.Username,
				"fullname":   it.Owner.FullName,
				"avatar_url": it.Owner.AvatarURL,
			},
		})
	}
	response.Success(c, http.StatusOK, out, "watch history", nil)
}
