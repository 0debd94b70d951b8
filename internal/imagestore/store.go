// Package imagestore forwards uploaded files to the hosted image service.
// Only the returned public URL is kept by the API.
package imagestore

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"
)

var ErrDisabled = errors.New("image storage is not configured")

// Folders group uploads by purpose.
const (
	FolderThumbnails = "property_thumbnails"
	FolderImages     = "property_images"
	FolderProfiles   = "employee_profiles"
)

type Store interface {
	// Upload stores the content under folder and returns its public URL.
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error)
}

// Disabled rejects every upload.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, string, io.Reader) (string, error) {
	return "", ErrDisabled
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename keeps the base name of an uploaded file and replaces
// anything outside [A-Za-z0-9._-] with a dash.
func SanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	base = unsafeChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		return "upload"
	}
	return base
}
