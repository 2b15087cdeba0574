package capability

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// PhotoSource selects where a photo comes from.
type PhotoSource string

const (
	// SourceCamera requests a freshly captured photo.
	SourceCamera PhotoSource = "camera"
	// SourcePhotos requests a photo from the library.
	SourcePhotos PhotoSource = "photos"
)

// Photo is an embeddable image payload plus its file name.
type Photo struct {
	Name string
	Data string // base64-encoded image bytes
}

// Camera obtains a photo. ok=false means "no result".
type Camera interface {
	Capture(ctx context.Context, source PhotoSource) (Photo, bool, error)
}

// UnavailableCamera always reports no result.
type UnavailableCamera struct{}

// Capture implements Camera.
func (UnavailableCamera) Capture(context.Context, PhotoSource) (Photo, bool, error) {
	return Photo{}, false, nil
}

// FileCamera reads an image file from disk and base64-encodes it. It
// stands in for the platform camera in the terminal client; Path must
// be set before each capture.
type FileCamera struct {
	Path string
}

// Capture implements Camera. An unset path means the user cancelled.
func (c *FileCamera) Capture(_ context.Context, _ PhotoSource) (Photo, bool, error) {
	if c.Path == "" {
		return Photo{}, false, nil
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return Photo{}, false, fmt.Errorf("failed to read photo file: %w", err)
	}
	return Photo{
		Name: filepath.Base(c.Path),
		Data: base64.StdEncoding.EncodeToString(data),
	}, true, nil
}
