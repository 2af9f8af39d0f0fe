package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/suyogxd/vidtube/config"
	"github.com/suyogxd/vidtube/internal/domain/entity"
	repo "github.com/suyogxd/vidtube/internal/domain/repository"
	"github.com/suyogxd/vidtube/pkg/helpers"
	"github.com/suyogxd/vidtube/pkg/mailer"
	mailtpl "github.com/suyogxd/vidtube/pkg/mailer/templates"
	"github.com/suyogxd/vidtube/pkg/media"
)

// UserService covers registration, the login/refresh/logout token lifecycle,
// and account maintenance.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Media  media.Uploader
	Redis  *redis.Client
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
	Cfg    *config.Config
}

func NewUserService(userRepo repo.UserRepository, jwt *helpers.JWTManager, uploader media.Uploader, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, cfg *config.Config) *UserService {
	return &UserService{Repo: userRepo, JWT: jwt, Media: uploader, Redis: rdb, Logger: logger, Pub: pub, Cfg: cfg}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// PublicUser is the sanitized user shape returned to clients. Password hash
// and the stored refresh token never appear here.
type PublicUser struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar_url"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func Sanitize(u *entity.User) PublicUser {
	return PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string

	// Staged multipart files; avatar is required, cover is optional.
	AvatarPath        string
	AvatarContentType string
	CoverPath         string
	CoverContentType  string
}

// Register creates a user: duplicate check, avatar/cover upload through the
// media gateway, insert, then a best-effort queued welcome email.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if u, _ := s.Repo.GetByUsername(ctx, username); u != nil {
		return nil, ErrAlreadyExists
	}
	if u, _ := s.Repo.GetByEmail(ctx, in.Email); u != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	avatar, err := s.Media.UploadLocalFile(ctx, in.AvatarPath, "avatars", in.AvatarContentType)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("avatar upload failed")
		}
		return nil, ErrUploadFailed
	}

	// Cover image is optional: a failed cover upload degrades to no cover
	// instead of failing the registration.
	coverURL := ""
	if in.CoverPath != "" {
		if cover, cErr := s.Media.UploadLocalFile(ctx, in.CoverPath, "covers", in.CoverContentType); cErr == nil {
			coverURL = cover.URL
		} else if s.Logger != nil {
			s.Logger.WithError(cErr).Warn("cover image upload failed, continuing without it")
		}
	}

	u := &entity.User{
		Username:      username,
		Email:         in.Email,
		FullName:      in.FullName,
		Password:      hash,
		AvatarURL:     avatar.URL,
		CoverImageURL: coverURL,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The unique indexes are authoritative; the pre-check above can race.
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	s.enqueueWelcomeEmail(ctx, u)
	return u, nil
}

func (s *UserService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data: map[string]any{
			"AppName":    s.Cfg.AppName,
			"FullName":   u.FullName,
			"Username":   u.Username,
			"SupportURL": s.Cfg.SupportURL,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

// Authenticate resolves the identifier (username or email) and checks the
// password without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsernameOrEmail(ctx, strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair, persists the refresh token on
// the user row (invalidating any prior one), and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.Repo.SetRefreshToken(ctx, u.ID, refresh); err != nil {
		return TokenPair{}, err
	}
	u.RefreshToken = refresh

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"fullname":   u.FullName,
			"avatar_url": u.AvatarURL,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, identifier, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the token pair. The presented refresh token must match the
// one stored on the user row; anything else is treated as expired/used.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrTokenExpired
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrTokenExpired
		}
		return nil, TokenPair{}, err
	}
	if u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return nil, TokenPair{}, ErrTokenExpired
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Logout clears the stored refresh token and drops the Redis session.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.SetRefreshToken(ctx, userID, ""); err != nil {
		return err
	}
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
		}
	}
	return nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !helpers.CompareHashAndPassword(u.Password, oldPassword) {
		return ErrInvalidCredentials
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, userID, hash)
}
