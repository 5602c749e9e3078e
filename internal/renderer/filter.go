package renderer

import (
	"fmt"
	"math"

	"github.com/ivlev/pics2video/internal/config"
)

// BuildZoomFilter returns the ffmpeg filter chain for one segment. The
// piped-in frame is expected at twice the output size (see PrepareFrame);
// zoompan multiplies it into duration*fps output frames with a linear
// centered zoom, then the chain scales back down to the target size.
func BuildZoomFilter(z ZoomSpec, p config.SegmentParams) string {
	frames := FrameCount(p.Duration, p.FPS)

	// zoompan evaluates z per output frame with 'on' counting from 0, so
	// the last frame lands exactly on the end zoom.
	var zExpr string
	if frames > 1 {
		step := (z.End - z.Start) / float64(frames-1)
		zExpr = fmt.Sprintf("%.6f+on*%.8f", z.Start, step)
	} else {
		zExpr = fmt.Sprintf("%.6f", z.Start)
	}

	zoomFilter := fmt.Sprintf(
		"zoompan=z='%s':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=%d:s=%dx%d:fps=%d",
		zExpr, frames, p.Width*2, p.Height*2, p.FPS,
	)

	// render at 2x then downscale for cleaner sub-pixel motion
	return fmt.Sprintf("%s,scale=%d:%d", zoomFilter, p.Width, p.Height)
}

// FrameCount returns the number of output frames for a segment, never less
// than one.
func FrameCount(duration float64, fps int) int {
	frames := int(math.Round(duration * float64(fps)))
	if frames < 1 {
		frames = 1
	}
	return frames
}
