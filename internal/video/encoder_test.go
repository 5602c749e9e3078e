package video

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/pics2video/internal/config"
)

func TestBuildSegmentArgs(t *testing.T) {
	p := config.SegmentParams{
		Width: 1280, Height: 720, FPS: 24,
		Duration: 2,
		Filter:   "zoompan=z='1.0'",
	}
	args := buildSegmentArgs(2560, 1440, "/tmp/s0.mp4", p, "libx264", 23)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-f rawvideo")
	assert.Contains(t, joined, "-pixel_format rgba")
	assert.Contains(t, joined, "-video_size 2560x1440")
	assert.Contains(t, joined, "-vf zoompan=z='1.0'")
	assert.Contains(t, joined, "-t 2.000000")
	assert.Contains(t, joined, "-r 24")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-crf 23")
	assert.Equal(t, "/tmp/s0.mp4", args[len(args)-1])
}

func TestBuildConcatArgsWithAudio(t *testing.T) {
	args := buildConcatArgs("/tmp/inputs.txt", "/music/track.mp3", 20, "/out/video_1.mp4")
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-f concat -safe 0 -i /tmp/inputs.txt")
	// short audio loops, the -t cut trims it at the video's end
	assert.Contains(t, joined, "-stream_loop -1 -i /music/track.mp3")
	assert.Contains(t, joined, "-map 0:v -map 1:a")
	assert.Contains(t, joined, "-c:v copy")
	assert.Contains(t, joined, "-c:a aac")
	assert.Contains(t, joined, "-t 20.000000")
	assert.Equal(t, "/out/video_1.mp4", args[len(args)-1])
}

func TestBuildConcatArgsWithoutAudio(t *testing.T) {
	args := buildConcatArgs("/tmp/inputs.txt", "", 20, "/out/video_1.mp4")
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-c copy")
	assert.NotContains(t, joined, "-stream_loop")
	assert.NotContains(t, joined, "-map")
}

func TestQualityArgsPerEncoder(t *testing.T) {
	assert.Equal(t, []string{"-crf", "23", "-preset", "medium"}, qualityArgs("libx264", 23))
	assert.Equal(t, []string{"-cq", "28"}, qualityArgs("h264_nvenc", 28))
	assert.Equal(t, []string{"-b:v", "7500k"}, qualityArgs("h264_videotoolbox", 75))
}

func TestConcatenateFailureRemovesPartialOutput(t *testing.T) {
	tmp := t.TempDir()
	outPath := filepath.Join(tmp, "out.mp4")
	require.NoError(t, os.WriteFile(outPath, []byte("partial"), 0o644))

	e := &FFmpegEncoder{Codec: "libx264", Quality: 23}
	err := e.Concatenate(context.Background(),
		[]string{filepath.Join(tmp, "missing.mp4")}, "", 2, outPath, tmp)

	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, outPath, encErr.Path)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "partial output must be removed")
}

func TestEncodeSegmentFailureRemovesPartialSegment(t *testing.T) {
	tmp := t.TempDir()
	segPath := filepath.Join(tmp, "s0.mp4")

	p := config.SegmentParams{Width: 32, Height: 18, FPS: 24, Duration: 0.5, Filter: "zoompan=z='1.0':d=12:s=32x18"}
	e := &FFmpegEncoder{Codec: "no_such_codec", Quality: 23}

	img := image.NewRGBA(image.Rect(0, 0, 64, 36))
	err := e.EncodeSegment(context.Background(), img, segPath, p)

	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)

	_, statErr := os.Stat(segPath)
	assert.True(t, os.IsNotExist(statErr), "partial segment must be removed")
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail("short", 10))

	long := strings.Repeat("a", 50) + "end"
	got := tail(long, 10)
	require.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "end"))
	assert.Len(t, got, 13)
}
