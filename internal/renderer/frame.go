package renderer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/pics2video/internal/system"
)

// ImageDecodeError reports an image that could not be read or decoded.
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("decode image %s: %v", e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error {
	return e.Err
}

// PrepareFrame decodes the image at path and returns it cover-fit rescaled
// and center-cropped to exactly twice the target frame size, ready to pipe
// into the encoder. The buffer comes from the shared frame pool; the
// caller must hand it back with ReleaseFrame once the segment is encoded.
func PrepareFrame(path string, targetW, targetH int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: err}
	}

	superW, superH := targetW*2, targetH*2
	bounds := src.Bounds()
	coverW, coverH := CoverSize(bounds.Dx(), bounds.Dy(), superW, superH)

	scaled := system.GetFrame(image.Rect(0, 0, coverW, coverH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Src, nil)

	if coverW == superW && coverH == superH {
		return scaled, nil
	}

	// crop the covering excess symmetrically
	offX := (coverW - superW) / 2
	offY := (coverH - superH) / 2
	out := system.GetFrame(image.Rect(0, 0, superW, superH))
	xdraw.Copy(out, image.Point{}, scaled, image.Rect(offX, offY, offX+superW, offY+superH), xdraw.Src, nil)
	system.PutFrame(scaled)

	return out, nil
}

// ReleaseFrame returns a prepared frame to the pool.
func ReleaseFrame(img *image.RGBA) {
	system.PutFrame(img)
}
