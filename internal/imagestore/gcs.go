package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const uploadTimeout = 50 * time.Second

// GCS uploads to a public Google Cloud Storage bucket.
type GCS struct {
	client     *storage.Client
	bucketName string
	uploadPath string
}

// NewGCS creates a storage client from the ambient Google credentials
// (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
func NewGCS(ctx context.Context, bucketName, uploadPath string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if uploadPath != "" && !strings.HasSuffix(uploadPath, "/") {
		uploadPath += "/"
	}
	return &GCS{client: client, bucketName: bucketName, uploadPath: uploadPath}, nil
}

func (g *GCS) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	objectPath := g.objectPath(folder, filename)

	wc := g.client.Bucket(g.bucketName).Object(objectPath).NewWriter(ctx)
	if contentType != "" {
		wc.ContentType = contentType
	}
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", objectPath, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucketName, objectPath), nil
}

func (g *GCS) objectPath(folder, filename string) string {
	return g.uploadPath + folder + "/" + uuid.NewString() + "_" + SanitizeFilename(filename)
}

func (g *GCS) Close() error {
	return g.client.Close()
}
