package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/suyogxd/vidtube/internal/domain/entity"
	repo "github.com/suyogxd/vidtube/internal/domain/repository"
	"github.com/suyogxd/vidtube/pkg/media"
)

// VideoService handles publishing, playback lookups, and the user's
// watch-history projection.
type VideoService struct {
	Videos repo.VideoRepository
	Users  repo.UserRepository
	Media  media.Uploader
	Logger *logrus.Logger
}

func NewVideoService(videos repo.VideoRepository, users repo.UserRepository, uploader media.Uploader, logger *logrus.Logger) *VideoService {
	return &VideoService{Videos: videos, Users: users, Media: uploader, Logger: logger}
}

type PublishInput struct {
	OwnerID     string
	Title       string
	Description string
	Duration    float64

	VideoPath            string
	VideoContentType     string
	ThumbnailPath        string
	ThumbnailContentType string
}

// VideoWithOwner pairs a video with its owner summary for responses.
type VideoWithOwner struct {
	Video entity.Video        `json:"video"`
	Owner entity.OwnerSummary `json:"owner"`
}

// Publish uploads the video file and thumbnail through the media gateway and
// stores the video row.
func (s *VideoService) Publish(ctx context.Context, in PublishInput) (*entity.Video, error) {
	videoFile, err := s.Media.UploadLocalFile(ctx, in.VideoPath, "videos", in.VideoContentType)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("video upload failed")
		}
		return nil, ErrUploadFailed
	}
	thumb, err := s.Media.UploadLocalFile(ctx, in.ThumbnailPath, "thumbnails", in.ThumbnailContentType)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("thumbnail upload failed")
		}
		return nil, ErrUploadFailed
	}

	v := &entity.Video{
		OwnerID:      in.OwnerID,
		VideoURL:     videoFile.URL,
		ThumbnailURL: thumb.URL,
		Title:        in.Title,
		Description:  in.Description,
		Duration:     in.Duration,
		IsPublished:  true,
	}
	if err := s.Videos.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns a published video with its owner summary.
func (s *VideoService) Get(ctx context.Context, id string) (*VideoWithOwner, error) {
	v, err := s.Videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !v.IsPublished {
		return nil, ErrVideoNotFound
	}
	owner, err := s.Users.GetByID(ctx, v.OwnerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &VideoWithOwner{Video: *v, Owner: owner.Summary()}, nil
}

// Watch appends the video to the user's history and bumps the view counter.
// The history row is the primary fact; a view left uncounted on a failed
// increment is acceptable, a counted view with no history row is not.
func (s *VideoService) Watch(ctx context.Context, userID, videoID string) error {
	v, err := s.Videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	if !v.IsPublished {
		return ErrVideoNotFound
	}
	if err := s.Users.AppendWatchHistory(ctx, userID, videoID); err != nil {
		return err
	}
	return s.Videos.IncrementViews(ctx, videoID)
}

// History returns the watch-history projection in stored order. An empty
// history yields an empty slice, never an error.
func (s *VideoService) History(ctx context.Context, userID string) ([]entity.WatchHistoryItem, error) {
	return s.Users.WatchHistory(ctx, userID)
}
