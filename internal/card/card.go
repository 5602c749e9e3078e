// Package card renders the optional outro frame: a dark card with a
// centered QR code pointing at the creator's link.
package card

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
)

var background = color.RGBA{R: 0x12, G: 0x12, B: 0x14, A: 0xff}

// Render produces a width x height RGBA frame with the QR code for link
// centered on it. The code spans half the frame height.
func Render(link string, width, height int) (*image.RGBA, error) {
	if link == "" {
		return nil, fmt.Errorf("empty link")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid card size %dx%d", width, height)
	}

	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("build qr code: %w", err)
	}

	size := height / 2
	if size > width {
		size = width
	}
	qrImg := q.Image(size)

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	qb := qrImg.Bounds()
	offset := image.Pt((width-qb.Dx())/2, (height-qb.Dy())/2)
	draw.Draw(out, qb.Add(offset).Sub(qb.Min), qrImg, qb.Min, draw.Src)

	return out, nil
}
