package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/suyogxd/vidtube/internal/domain/entity"
	repo "github.com/suyogxd/vidtube/internal/domain/repository"
	"github.com/suyogxd/vidtube/pkg/media"
)

type fakeUserRepo struct {
	users   map[string]*entity.User
	history map[string][]string
	videos  *fakeVideoRepo
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, history: map[string][]string{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range f.users {
		if ex.Username == strings.ToLower(u.Username) || ex.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.Username = strings.ToLower(u.Username)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == strings.ToLower(username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (*entity.User, error) {
	if u, err := f.GetByUsername(ctx, identifier); err == nil {
		return u, nil
	}
	return f.GetByEmail(ctx, identifier)
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	ex, ok := f.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	ex.Email = u.Email
	ex.FullName = u.FullName
	ex.AvatarURL = u.AvatarURL
	ex.CoverImageURL = u.CoverImageURL
	ex.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) SetRefreshToken(_ context.Context, userID, token string) error {
	u, ok := f.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) AppendWatchHistory(_ context.Context, userID, videoID string) error {
	f.history[userID] = append(f.history[userID], videoID)
	return nil
}

func (f *fakeUserRepo) WatchHistory(_ context.Context, userID string) ([]entity.WatchHistoryItem, error) {
	items := make([]entity.WatchHistoryItem, 0)
	for _, vid := range f.history[userID] {
		v, ok := f.videos.videos[vid]
		if !ok {
			continue
		}
		owner := f.users[v.OwnerID]
		items = append(items, entity.WatchHistoryItem{Video: *v, Owner: owner.Summary()})
	}
	return items, nil
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)

type edge struct{ subscriber, channel string }

type fakeSubRepo struct {
	edges map[edge]bool
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{edges: map[edge]bool{}}
}

func (f *fakeSubRepo) Create(_ context.Context, subscriberID, channelID string) error {
	e := edge{subscriberID, channelID}
	if f.edges[e] {
		return repo.ErrDuplicate
	}
	f.edges[e] = true
	return nil
}

func (f *fakeSubRepo) Delete(_ context.Context, subscriberID, channelID string) error {
	delete(f.edges, edge{subscriberID, channelID})
	return nil
}

func (f *fakeSubRepo) CountSubscribers(_ context.Context, channelID string) (int64, error) {
	var n int64
	for e := range f.edges {
		if e.channel == channelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubRepo) CountSubscriptions(_ context.Context, subscriberID string) (int64, error) {
	var n int64
	for e := range f.edges {
		if e.subscriber == subscriberID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubRepo) IsSubscribedBy(_ context.Context, channelID, subscriberID string) (bool, error) {
	return f.edges[edge{subscriberID, channelID}], nil
}

var _ repo.SubscriptionRepository = (*fakeSubRepo)(nil)

type fakeVideoRepo struct {
	videos map[string]*entity.Video
	seq    int
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[string]*entity.Video{}}
}

func (f *fakeVideoRepo) Create(_ context.Context, v *entity.Video) error {
	f.seq++
	v.ID = fmt.Sprintf("video-%d", f.seq)
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) GetByID(_ context.Context, id string) (*entity.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) IncrementViews(_ context.Context, id string) error {
	v, ok := f.videos[id]
	if !ok {
		return repo.ErrNotFound
	}
	v.Views++
	return nil
}

var _ repo.VideoRepository = (*fakeVideoRepo)(nil)

// fakeUploader pretends every upload lands in a CDN bucket.
type fakeUploader struct {
	uploads []string
}

func (f *fakeUploader) UploadLocalFile(_ context.Context, localPath, folder, _ string) (media.UploadResult, error) {
	f.uploads = append(f.uploads, localPath)
	object := folder + "/" + filepath.Base(localPath)
	return media.UploadResult{URL: "https://cdn.test/" + object, Bucket: "test", Object: object}, nil
}

// failingUploader simulates an unreachable media store.
type failingUploader struct{}

func (failingUploader) UploadLocalFile(context.Context, string, string, string) (media.UploadResult, error) {
	return media.UploadResult{}, errors.New("upstream unavailable")
}

// brokenUserRepo simulates a store outage on reads.
type brokenUserRepo struct {
	*fakeUserRepo
	err error
}

func (b *brokenUserRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, b.err
}

func (b *brokenUserRepo) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, b.err
}

func (b *brokenUserRepo) GetByUsernameOrEmail(context.Context, string) (*entity.User, error) {
	return nil, b.err
}

// appendFailUserRepo rejects history appends.
type appendFailUserRepo struct {
	*fakeUserRepo
	err error
}

func (a *appendFailUserRepo) AppendWatchHistory(context.Context, string, string) error {
	return a.err
}

// brokenVideoRepo simulates a store outage on reads.
type brokenVideoRepo struct {
	*fakeVideoRepo
	err error
}

func (b *brokenVideoRepo) GetByID(context.Context, string) (*entity.Video, error) {
	return nil, b.err
}
