package storage

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailDownscalesLargeImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1024, 1024))
	thumb := Thumbnail(img)

	b := thumb.Bounds()
	assert.Equal(t, 512, b.Dx())
	assert.Equal(t, 512, b.Dy())
}

func TestThumbnailPreservesAspectRatio(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1024, 2048))
	thumb := Thumbnail(img)

	b := thumb.Bounds()
	assert.Equal(t, 256, b.Dx())
	assert.Equal(t, 512, b.Dy())
}

func TestThumbnailPassesThroughSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 300))
	thumb := Thumbnail(img)
	assert.Equal(t, img.Bounds(), thumb.Bounds())
}

func TestConfigIsEnabled(t *testing.T) {
	assert.False(t, (&Config{}).IsEnabled())
	assert.False(t, (&Config{AccessKeyID: "id"}).IsEnabled())
	assert.True(t, (&Config{AccessKeyID: "id", SecretAccessKey: "secret"}).IsEnabled())
}
