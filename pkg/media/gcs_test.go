package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestUploadRemovesTempFileEvenOnFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "staged.png")
	if err := os.WriteFile(p, []byte("bytes"), 0o600); err != nil {
		t.Fatalf("stage file: %v", err)
	}

	// No client configured: the upload must fail but still clean up.
	g := NewGateway(nil, "")
	if _, err := g.UploadLocalFile(context.Background(), p, "avatars", "image/png"); err == nil {
		t.Fatal("upload succeeded without a configured client")
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Error("temp file left behind after failed upload")
	}
}

func TestPublicURL(t *testing.T) {
	got := PublicURL("vidtube-dev", "avatars/abc.png")
	want := "https://storage.googleapis.com/vidtube-dev/avatars/abc.png"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}
