package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestThumbnail(t *testing.T) {
	thumb, err := NewThumbnailer().Thumbnail(pngFixture(t, 400, 200))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.Width)
	assert.Equal(t, 24, cfg.Height)
}

func TestThumbnail_RejectsNonImages(t *testing.T) {
	_, err := NewThumbnailer().Thumbnail([]byte("not an image"))
	assert.Error(t, err)
}

func TestThumbPath(t *testing.T) {
	assert.Equal(t, "media/events/1/mara-thumb.jpg", ThumbPath("media/events/1/mara.png"))
	assert.Equal(t, "media/events/1/mara-thumb.jpg", ThumbPath("media/events/1/mara"))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("a.bin", "image/webp"))
	assert.True(t, IsImage("poster.JPEG", ""))
	assert.False(t, IsImage("hero.mp4", "video/mp4"))
}
