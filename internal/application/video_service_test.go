package application

import (
	"context"
	"errors"
	"testing"

	"github.com/suyogxd/vidtube/internal/domain/entity"
)

func newVideoFixture(t *testing.T) (*VideoService, *fakeUserRepo, *fakeVideoRepo, string) {
	t.Helper()
	users := newFakeUserRepo()
	videos := newFakeVideoRepo()
	users.videos = videos
	svc := NewVideoService(videos, users, &fakeUploader{}, nil)

	owner := &entity.User{Username: "owner", Email: "owner@example.com", FullName: "Owner", Password: "x", AvatarURL: "a"}
	if err := users.Create(context.Background(), owner); err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return svc, users, videos, owner.ID
}

func publishTestVideo(t *testing.T, svc *VideoService, ownerID, title string) string {
	t.Helper()
	v, err := svc.Publish(context.Background(), PublishInput{
		OwnerID:              ownerID,
		Title:                title,
		Duration:             120,
		VideoPath:            "/tmp/" + title + ".mp4",
		VideoContentType:     "video/mp4",
		ThumbnailPath:        "/tmp/" + title + ".jpg",
		ThumbnailContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("publish %s: %v", title, err)
	}
	return v.ID
}

func TestPublishSetsURLsAndPublishes(t *testing.T) {
	svc, _, videos, ownerID := newVideoFixture(t)

	id := publishTestVideo(t, svc, ownerID, "intro")
	v, err := videos.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v.VideoURL == "" || v.ThumbnailURL == "" {
		t.Error("media URLs not set")
	}
	if !v.IsPublished {
		t.Error("video not published")
	}
}

func TestPublishUploadFailure(t *testing.T) {
	users := newFakeUserRepo()
	videos := newFakeVideoRepo()
	svc := NewVideoService(videos, users, failingUploader{}, nil)

	_, err := svc.Publish(context.Background(), PublishInput{OwnerID: "u", Title: "t", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.jpg"})
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("err = %v, want ErrUploadFailed", err)
	}
	if len(videos.videos) != 0 {
		t.Error("video row created despite failed upload")
	}
}

func TestGetUnknownVideo(t *testing.T) {
	svc, _, _, _ := newVideoFixture(t)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("err = %v, want ErrVideoNotFound", err)
	}
}

func TestGetIncludesOwnerSummary(t *testing.T) {
	svc, _, _, ownerID := newVideoFixture(t)
	id := publishTestVideo(t, svc, ownerID, "intro")

	got, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Owner.ID != ownerID || got.Owner.Username != "owner" {
		t.Errorf("owner summary = %+v", got.Owner)
	}
}

func TestWatchUnknownVideo(t *testing.T) {
	svc, _, _, ownerID := newVideoFixture(t)

	if err := svc.Watch(context.Background(), ownerID, "missing"); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("err = %v, want ErrVideoNotFound", err)
	}
}

func TestWatchBumpsViewsAndAppendsHistory(t *testing.T) {
	svc, _, videos, ownerID := newVideoFixture(t)
	ctx := context.Background()
	id := publishTestVideo(t, svc, ownerID, "intro")

	if err := svc.Watch(ctx, ownerID, id); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := svc.Watch(ctx, ownerID, id); err != nil {
		t.Fatalf("watch again: %v", err)
	}

	v, _ := videos.GetByID(ctx, id)
	if v.Views != 2 {
		t.Errorf("views = %d, want 2", v.Views)
	}
	items, err := svc.History(ctx, ownerID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("history length = %d, want 2", len(items))
	}
}

func TestHistoryPreservesWatchOrder(t *testing.T) {
	svc, _, _, ownerID := newVideoFixture(t)
	ctx := context.Background()

	v1 := publishTestVideo(t, svc, ownerID, "first")
	v2 := publishTestVideo(t, svc, ownerID, "second")
	v3 := publishTestVideo(t, svc, ownerID, "third")

	for _, id := range []string{v3, v1, v2} {
		if err := svc.Watch(ctx, ownerID, id); err != nil {
			t.Fatalf("watch %s: %v", id, err)
		}
	}

	items, err := svc.History(ctx, ownerID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	want := []string{v3, v1, v2}
	if len(items) != len(want) {
		t.Fatalf("history length = %d, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].Video.ID != w {
			t.Errorf("history[%d] = %s, want %s", i, items[i].Video.ID, w)
		}
	}
}

func TestGetStoreFailurePropagates(t *testing.T) {
	boom := errors.New("connection refused")
	videos := &brokenVideoRepo{fakeVideoRepo: newFakeVideoRepo(), err: boom}
	svc := NewVideoService(videos, newFakeUserRepo(), &fakeUploader{}, nil)

	_, err := svc.Get(context.Background(), "any")
	if errors.Is(err, ErrVideoNotFound) {
		t.Fatal("store failure reported as missing video")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the store error", err)
	}
}

func TestWatchFailedAppendLeavesViewsUntouched(t *testing.T) {
	boom := errors.New("insert rejected")
	users := &appendFailUserRepo{fakeUserRepo: newFakeUserRepo(), err: boom}
	videos := newFakeVideoRepo()
	svc := NewVideoService(videos, users, &fakeUploader{}, nil)
	ctx := context.Background()

	v := &entity.Video{OwnerID: "owner", VideoURL: "u", ThumbnailURL: "t", Title: "clip", IsPublished: true}
	if err := videos.Create(ctx, v); err != nil {
		t.Fatalf("seed video: %v", err)
	}

	if err := svc.Watch(ctx, "viewer", v.ID); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the append error", err)
	}
	got, _ := videos.GetByID(ctx, v.ID)
	if got.Views != 0 {
		t.Errorf("views = %d, want 0 after failed history append", got.Views)
	}
}

func TestHistoryEmpty(t *testing.T) {
	svc, _, _, ownerID := newVideoFixture(t)

	items, err := svc.History(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("history = %#v, want empty non-nil slice", items)
	}
}
