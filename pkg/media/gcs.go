package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewClient creates a Google Cloud Storage client. If credsPath is empty,
// Application Default Credentials are used.
func NewClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// UploadResult identifies a stored object and its public URL. Callers get
// either a result or an error, never a silent nil.
type UploadResult struct {
	URL    string
	Bucket string
	Object string
}

// Uploader is the gateway interface services depend on.
type Uploader interface {
	UploadLocalFile(ctx context.Context, localPath, folder, contentType string) (UploadResult, error)
}

// Gateway pushes local temp files into a GCS bucket. Whatever happens, the
// temp file is removed before UploadLocalFile returns.
type Gateway struct {
	Client *storage.Client
	Bucket string
}

func NewGateway(client *storage.Client, bucket string) *Gateway {
	return &Gateway{Client: client, Bucket: bucket}
}

// UploadLocalFile streams the file at localPath into bucket/folder under a
// random object name keeping the original extension.
func (g *Gateway) UploadLocalFile(ctx context.Context, localPath, folder, contentType string) (UploadResult, error) {
	defer func() { _ = os.Remove(localPath) }()

	if g == nil || g.Client == nil || g.Bucket == "" {
		return UploadResult{}, errors.New("media storage not configured")
	}
	f, err := os.Open(localPath)
	if err != nil {
		return UploadResult{}, err
	}
	defer func() { _ = f.Close() }()

	ext := strings.ToLower(filepath.Ext(localPath))
	object := filepath.ToSlash(filepath.Join(folder, uuid.NewString()+ext))

	wc := g.Client.Bucket(g.Bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // single-shot upload for small files
	if _, err := io.Copy(wc, f); err != nil {
		_ = wc.Close()
		return UploadResult{}, err
	}
	if err := wc.Close(); err != nil {
		return UploadResult{}, err
	}
	return UploadResult{URL: PublicURL(g.Bucket, object), Bucket: g.Bucket, Object: object}, nil
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}
