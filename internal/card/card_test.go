package card

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	img, err := Render("https://example.com/me", 640, 360)
	require.NoError(t, err)

	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 360, img.Bounds().Dy())

	// corner stays background, center is covered by the code's quiet zone
	corner := img.RGBAAt(0, 0)
	assert.Equal(t, background, corner)
	center := img.RGBAAt(320, 180)
	assert.NotEqual(t, color.RGBA{}, center)
}

func TestRenderEmptyLink(t *testing.T) {
	_, err := Render("", 640, 360)
	assert.Error(t, err)
}

func TestRenderInvalidSize(t *testing.T) {
	_, err := Render("https://example.com", 0, 360)
	assert.Error(t, err)
}

func TestRenderNarrowFrame(t *testing.T) {
	// code span clamps to the width when the frame is narrower than tall
	img, err := Render("https://example.com", 40, 200)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}
