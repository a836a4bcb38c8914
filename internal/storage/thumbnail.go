package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"path"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ThumbSuffix is appended to the file stem of a placeholder image
const ThumbSuffix = "-thumb.jpg"

// Thumbnailer renders the low resolution placeholders shown before a full
// lineup photo has loaded
type Thumbnailer struct {
	Width   int
	Blur    float64
	Quality int
}

func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{Width: 48, Blur: 1.5, Quality: 60}
}

// IsImage reports whether the file looks like a decodable image
func IsImage(name, contentType string) bool {
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

// ThumbPath returns media/events/1/mara-thumb.jpg for media/events/1/mara.png
func ThumbPath(p string) string {
	return strings.TrimSuffix(p, path.Ext(p)) + ThumbSuffix
}

// Thumbnail decodes data and returns a small blurred JPEG
func (t *Thumbnailer) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	small := imaging.Resize(img, t.Width, 0, imaging.Lanczos)
	if t.Blur > 0 {
		small = imaging.Blur(small, t.Blur)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, small, &jpeg.Options{Quality: t.Quality}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
