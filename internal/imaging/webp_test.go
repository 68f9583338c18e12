package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestToWebPShrinksLargeImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 1024, 512), MaxSide, Quality)
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 200, 300), MaxSide, Quality)
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 300), img.Bounds())
}

func TestFitPortrait(t *testing.T) {
	img := Fit(image.NewRGBA(image.Rect(0, 0, 300, 1200)), 512)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 512, img.Bounds().Dy())
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(bytes.NewReader([]byte("not an image")), MaxSide, Quality)
	assert.True(t, errors.Is(err, ErrUnsupportedImage))
}
