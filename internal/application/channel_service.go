package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/suyogxd/vidtube/internal/domain/entity"
	repo "github.com/suyogxd/vidtube/internal/domain/repository"
	"github.com/suyogxd/vidtube/pkg/helpers"
)

// ChannelService computes viewer-aware channel profiles over the
// subscription relation and maintains the channel search index.
type ChannelService struct {
	Users           repo.UserRepository
	Subs            repo.SubscriptionRepository
	Redis           *redis.Client
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESChannelsIndex string
}

func NewChannelService(users repo.UserRepository, subs repo.SubscriptionRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ChannelService {
	return &ChannelService{Users: users, Subs: subs, Redis: rdb, Logger: logger, ES: es, ESChannelsIndex: esIndex}
}

// ChannelProfile is the whitelisted projection of a channel: identity fields
// plus the three computed subscription facts. Nothing else leaks through.
type ChannelProfile struct {
	ID                      string `json:"id"`
	FullName                string `json:"fullname"`
	Username                string `json:"username"`
	Email                   string `json:"email"`
	SubscribersCount        int64  `json:"subscribers_count"`
	ChannelsSubscribedTo    int64  `json:"channels_subscribed_to_count"`
	IsSubscribed            bool   `json:"is_subscribed"`
	AvatarURL               string `json:"avatar_url"`
	CoverImageURL           string `json:"cover_image_url,omitempty"`
}

func profileCacheKey(username, viewerID string) string {
	if viewerID == "" {
		viewerID = "anon"
	}
	return "channel:profile:" + username + ":" + viewerID
}

// Profile resolves the channel by case-insensitive username and composes the
// three subscription queries. viewerID may be empty for anonymous requests.
func (s *ChannelService) Profile(ctx context.Context, username, viewerID string) (*ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if s.Redis != nil {
		var cached ChannelProfile
		if ok, _ := helpers.RedisGetJSON(ctx, s.Redis, profileCacheKey(username, viewerID), &cached); ok {
			return &cached, nil
		}
	}

	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	subscribers, err := s.Subs.CountSubscribers(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.Subs.CountSubscriptions(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = s.Subs.IsSubscribedBy(ctx, u.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	p := &ChannelProfile{
		ID:                   u.ID,
		FullName:             u.FullName,
		Username:             u.Username,
		Email:                u.Email,
		SubscribersCount:     subscribers,
		ChannelsSubscribedTo: subscribedTo,
		IsSubscribed:         isSubscribed,
		AvatarURL:            u.AvatarURL,
		CoverImageURL:        u.CoverImageURL,
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileCacheKey(username, viewerID), p, 30*time.Second); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("profile cache write failed")
		}
	}
	return p, nil
}

// Subscribe creates the (subscriber, channel) edge. Subscribing twice is a
// no-op; subscribing to yourself is rejected.
func (s *ChannelService) Subscribe(ctx context.Context, viewerID, channelUsername string) error {
	ch, err := s.Users.GetByUsername(ctx, channelUsername)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrChannelNotFound
		}
		return err
	}
	if ch.ID == viewerID {
		return ErrSelfSubscription
	}
	if err := s.Subs.Create(ctx, viewerID, ch.ID); err != nil && !errors.Is(err, repo.ErrDuplicate) {
		return err
	}
	s.invalidateProfile(ctx, ch.Username, viewerID)
	return nil
}

// Unsubscribe deletes the edge if present.
func (s *ChannelService) Unsubscribe(ctx context.Context, viewerID, channelUsername string) error {
	ch, err := s.Users.GetByUsername(ctx, channelUsername)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrChannelNotFound
		}
		return err
	}
	if err := s.Subs.Delete(ctx, viewerID, ch.ID); err != nil {
		return err
	}
	s.invalidateProfile(ctx, ch.Username, viewerID)
	return nil
}

func (s *ChannelService) invalidateProfile(ctx context.Context, username, viewerID string) {
	if s.Redis == nil {
		return
	}
	_ = s.Redis.Del(ctx, profileCacheKey(username, viewerID), profileCacheKey(username, "")).Err()
}

// IndexChannel pushes the channel document into Elasticsearch, best effort.
func (s *ChannelService) IndexChannel(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESChannelsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"fullname":   u.FullName,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESChannelsIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchChannels performs a multi_match search on username and fullname.
func (s *ChannelService) SearchChannels(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESChannelsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "fullname"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESChannelsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
