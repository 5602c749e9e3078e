package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestPrepareFrameCoversTargetExactly(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
	}{
		{"landscape", 200, 100},
		{"portrait", 100, 200},
		{"very wide", 400, 20},
		{"very tall", 20, 400},
		{"square", 64, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "img.png")
			writeTestPNG(t, path, tt.srcW, tt.srcH)

			frame, err := PrepareFrame(path, 32, 18)
			require.NoError(t, err)
			defer ReleaseFrame(frame)

			// twice the target size regardless of source aspect ratio
			assert.Equal(t, 64, frame.Bounds().Dx())
			assert.Equal(t, 36, frame.Bounds().Dy())
		})
	}
}

func TestPrepareFrameMissingFile(t *testing.T) {
	_, err := PrepareFrame(filepath.Join(t.TempDir(), "nope.png"), 32, 18)

	var decodeErr *ImageDecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Path, "nope.png")
}

func TestPrepareFrameCorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := PrepareFrame(path, 32, 18)

	var decodeErr *ImageDecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, path, decodeErr.Path)
	assert.Error(t, decodeErr.Unwrap())
}
