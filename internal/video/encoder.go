package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/pics2video/internal/config"
)

const logTail = 800

// Encoder produces one video segment per prepared frame and assembles the
// ordered segments plus the audio track into the final file.
type Encoder interface {
	EncodeSegment(ctx context.Context, img image.Image, segPath string, p config.SegmentParams) error
	Concatenate(ctx context.Context, segmentPaths []string, audioPath string, totalDuration float64, outPath, tmpDir string) error
}

// FFmpegEncoder shells out to the local ffmpeg binary. Segments take a
// single raw RGBA frame over stdin; zoompan multiplies it into the timed
// clip.
type FFmpegEncoder struct {
	Codec   string
	Quality int
}

func (e *FFmpegEncoder) EncodeSegment(ctx context.Context, img image.Image, segPath string, p config.SegmentParams) error {
	bounds := img.Bounds()
	args := buildSegmentArgs(bounds.Dx(), bounds.Dy(), segPath, p, e.Codec, e.Quality)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &EncodeError{Path: segPath, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &EncodeError{Path: segPath, Err: err}
	}

	// zoompan with d=N multiplies the single piped frame, so the writer
	// sends exactly one frame of raw data
	var g errgroup.Group
	g.Go(func() error {
		defer stdin.Close()
		return writeRawRGBA(stdin, img)
	})
	g.Go(cmd.Wait)

	if err := g.Wait(); err != nil {
		os.Remove(segPath)
		return &EncodeError{Path: segPath, Log: tail(out.String(), logTail), Err: err}
	}
	return nil
}

// Concatenate joins the segments in order and muxes in the audio track.
// Audio shorter than the video loops from the start; audio longer is cut
// at the video's end. On failure the partial output file is removed.
func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, audioPath string, totalDuration float64, outPath, tmpDir string) error {
	listPath := filepath.Join(tmpDir, "inputs.txt")
	f, err := os.Create(listPath)
	if err != nil {
		return &EncodeError{Path: outPath, Err: err}
	}
	for _, p := range segmentPaths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			f.Close()
			return &EncodeError{Path: outPath, Err: err}
		}
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	if err := f.Close(); err != nil {
		return &EncodeError{Path: outPath, Err: err}
	}

	args := buildConcatArgs(listPath, audioPath, totalDuration, outPath)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(outPath)
		return &EncodeError{Path: outPath, Log: tail(string(out), logTail), Err: err}
	}
	return nil
}

func buildSegmentArgs(inputW, inputH int, segPath string, p config.SegmentParams, codec string, quality int) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", inputW, inputH),
		"-i", "-",
		"-vf", p.Filter,
		"-t", fmt.Sprintf("%f", p.Duration),
		"-r", strconv.Itoa(p.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", codec,
	}
	args = append(args, qualityArgs(codec, quality)...)
	args = append(args, segPath)
	return args
}

func buildConcatArgs(listPath, audioPath string, totalDuration float64, outPath string) []string {
	args := []string{
		"-y",
		"-f", "concat", "-safe", "0", "-i", listPath,
	}

	if audioPath == "" {
		return append(args, "-c", "copy", outPath)
	}

	// -stream_loop repeats short audio seamlessly; the exact -t cut trims
	// it (or a longer track) at the video's end
	args = append(args, "-stream_loop", "-1", "-i", audioPath)
	args = append(args,
		"-map", "0:v", "-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac",
		"-t", fmt.Sprintf("%f", totalDuration),
		outPath,
	)
	return args
}

func qualityArgs(codec string, quality int) []string {
	switch codec {
	case "h264_videotoolbox":
		// VideoToolbox has no CRF equivalent, use bitrate
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(quality)}
	default:
		return []string{"-crf", strconv.Itoa(quality), "-preset", "medium"}
	}
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
