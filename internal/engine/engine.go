package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ivlev/pics2video/internal/card"
	"github.com/ivlev/pics2video/internal/config"
	"github.com/ivlev/pics2video/internal/renderer"
	"github.com/ivlev/pics2video/internal/source"
	"github.com/ivlev/pics2video/internal/video"
)

// Engine drives the pipeline: discovered images are grouped into batches
// and each batch is rendered, encoded and assembled start-to-finish before
// the next one begins. A failed batch is reported and does not stop the
// batches after it.
type Engine struct {
	Config  *config.Config
	Source  source.Source
	Encoder video.Encoder

	audioDuration float64
}

// BatchResult records the outcome of one batch. Output is empty when the
// batch was skipped (no usable images); Err is set when it failed.
type BatchResult struct {
	Index   int
	Output  string
	Images  int
	Skipped []string
	Err     error
}

func New(cfg *config.Config, src source.Source, enc video.Encoder) *Engine {
	return &Engine{
		Config:  cfg,
		Source:  src,
		Encoder: enc,
	}
}

// Run processes every batch sequentially and returns one result per batch.
// The returned error covers run-level failures only (bad audio, unwritable
// output dir); per-batch failures land in the results.
func (e *Engine) Run(ctx context.Context) ([]BatchResult, error) {
	start := time.Now()
	cfg := e.Config

	if cfg.AudioPath != "" {
		dur, err := video.ProbeAudio(cfg.AudioPath)
		if err != nil {
			return nil, err
		}
		e.audioDuration = dur
		fmt.Printf("[*] audio track: %s (%.1fs)\n", cfg.AudioPath, dur)
	}

	batches := source.Batches(e.Source.Paths(), cfg.BatchSize, cfg.MaxVideos)
	if len(batches) == 0 {
		fmt.Println("[*] no images found, nothing to do")
		return nil, nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", cfg.OutputDir)
	}

	results := make([]BatchResult, 0, len(batches))
	for i, batch := range batches {
		fmt.Printf("[*] batch %d/%d: %d images\n", i+1, len(batches), len(batch))

		res := e.runBatch(ctx, i, batch)
		switch {
		case res.Err != nil:
			log.Printf("[!] batch %d failed: %v", i+1, res.Err)
		case res.Output == "":
			fmt.Printf("[*] batch %d skipped: no usable images\n", i+1)
		default:
			fmt.Printf("[+] batch %d done: %s\n", i+1, res.Output)
		}
		results = append(results, res)
	}

	if cfg.ShowStats {
		e.printStats(time.Since(start), results)
	}
	return results, nil
}

// runBatch builds one video from a group of images. Images that fail to
// decode are skipped with a logged reason; an encoder failure aborts the
// whole batch. The batch temp dir and every prepared frame are released on
// all exit paths.
func (e *Engine) runBatch(ctx context.Context, index int, images []string) BatchResult {
	cfg := e.Config
	res := BatchResult{Index: index}

	tmpDir, err := os.MkdirTemp("", "pics2video_")
	if err != nil {
		res.Err = errors.Wrap(err, "create temp directory")
		return res
	}
	defer os.RemoveAll(tmpDir)

	zoom := renderer.ZoomSpec{Start: cfg.ZoomStart, End: cfg.ZoomEnd}

	var segPaths []string
	var totalDuration float64

	for j, imgPath := range images {
		frame, err := renderer.PrepareFrame(imgPath, cfg.Width, cfg.Height)
		if err != nil {
			log.Printf("[!] skipping %s: %v", imgPath, err)
			res.Skipped = append(res.Skipped, imgPath)
			continue
		}

		segPath := filepath.Join(tmpDir, fmt.Sprintf("s%d.mp4", j))
		err = e.encodeSegment(ctx, frame, segPath, zoom, j)
		renderer.ReleaseFrame(frame)
		if err != nil {
			res.Err = errors.Wrapf(err, "batch %d, image %s", index+1, imgPath)
			return res
		}

		segPaths = append(segPaths, segPath)
		totalDuration += cfg.SegmentDuration
		fmt.Printf("[>] batch %d: segment %d/%d ready\n", index+1, j+1, len(images))
	}

	if len(segPaths) == 0 {
		return res
	}

	if cfg.QRLink != "" {
		segPath := filepath.Join(tmpDir, "outro.mp4")
		if err := e.encodeOutro(ctx, segPath, len(images)); err != nil {
			log.Printf("[!] skipping outro card: %v", err)
		} else {
			segPaths = append(segPaths, segPath)
			totalDuration += cfg.SegmentDuration
		}
	}

	if e.audioDuration > 0 {
		if e.audioDuration < totalDuration {
			fmt.Printf("[*] batch %d: audio loops to cover %.1fs\n", index+1, totalDuration)
		} else if e.audioDuration > totalDuration {
			fmt.Printf("[*] batch %d: audio trimmed at %.1fs\n", index+1, totalDuration)
		}
	}

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%d.mp4", cfg.NamePrefix, index+1))
	if err := e.Encoder.Concatenate(ctx, segPaths, cfg.AudioPath, totalDuration, outPath, tmpDir); err != nil {
		res.Err = errors.Wrapf(err, "batch %d", index+1)
		return res
	}

	res.Output = outPath
	res.Images = len(segPaths)
	return res
}

func (e *Engine) encodeSegment(ctx context.Context, frame image.Image, segPath string, zoom renderer.ZoomSpec, index int) error {
	cfg := e.Config
	p := config.SegmentParams{
		Width:    cfg.Width,
		Height:   cfg.Height,
		FPS:      cfg.FPS,
		Duration: cfg.SegmentDuration,
		Index:    index,
	}
	p.Filter = renderer.BuildZoomFilter(zoom, p)
	return e.Encoder.EncodeSegment(ctx, frame, segPath, p)
}

// encodeOutro appends the QR card as one more segment, held static.
func (e *Engine) encodeOutro(ctx context.Context, segPath string, index int) error {
	cfg := e.Config
	frame, err := card.Render(cfg.QRLink, cfg.Width*2, cfg.Height*2)
	if err != nil {
		return err
	}
	return e.encodeSegment(ctx, frame, segPath, renderer.ZoomSpec{Start: 1.0, End: 1.0}, index)
}

func (e *Engine) printStats(elapsed time.Duration, results []BatchResult) {
	outputs, segments := 0, 0
	for _, r := range results {
		if r.Output != "" {
			outputs++
		}
		segments += r.Images
	}

	report := fmt.Sprintf(
		"--- [RUN REPORT] ---\n"+
			"Total Time: %.2fs\n"+
			"Videos: %d\n"+
			"Segments: %d\n"+
			"Segments/s: %.2f\n",
		elapsed.Seconds(), outputs, segments,
		float64(segments)/elapsed.Seconds(),
	)

	if cores, err := cpu.Counts(true); err == nil {
		report += fmt.Sprintf("Host CPUs: %d\n", cores)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		report += fmt.Sprintf("Host Memory: %.1f%% used\n", vm.UsedPercent)
	}
	report += "--------------------\n"
	fmt.Print(report)
}
