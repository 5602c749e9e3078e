package renderer

import (
	"math"
)

// ZoomSpec describes the linear zoom applied across one segment: the crop
// scale grows from Start at t=0 to End at t=1, always centered on the
// image.
type ZoomSpec struct {
	Start float64
	End   float64
}

// DefaultZoom is the classic slow push-in.
func DefaultZoom() ZoomSpec {
	return ZoomSpec{Start: 1.0, End: 1.2}
}

// ScaleAt returns the zoom factor at normalized time t. Times outside
// [0,1] clamp to the endpoints, so the scale is monotone non-decreasing
// over any sampling of the segment.
func (z ZoomSpec) ScaleAt(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return z.Start + t*(z.End-z.Start)
}

// CoverSize returns the smallest dimensions that preserve the source
// aspect ratio while fully covering dstW x dstH (excess is cropped, never
// letterboxed).
func CoverSize(srcW, srcH, dstW, dstH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return dstW, dstH
	}
	scale := math.Max(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	w := int(math.Ceil(float64(srcW) * scale))
	h := int(math.Ceil(float64(srcH) * scale))
	// ceil can undershoot by a pixel on the covering axis
	if w < dstW {
		w = dstW
	}
	if h < dstH {
		h = dstH
	}
	return w, h
}

// CropWindow returns the centered region of a cover-fit image that the
// output frame shows at normalized time t. The window shrinks as the zoom
// grows and never leaves the image bounds, so every rendered frame is
// fully covered.
func (z ZoomSpec) CropWindow(t float64, coverW, coverH int) (x, y, w, h float64) {
	s := z.ScaleAt(t)
	w = float64(coverW) / s
	h = float64(coverH) / s
	x = (float64(coverW) - w) / 2
	y = (float64(coverH) - h) / 2
	return x, y, w, h
}
