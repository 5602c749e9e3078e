package config

import (
	"fmt"
)

// Config holds the full set of options for one run. Zero values are filled
// in by Default; Validate must pass before the engine is started.
type Config struct {
	InputDir   string `yaml:"input_dir"`
	OutputDir  string `yaml:"output_dir"`
	NamePrefix string `yaml:"name_prefix"`
	AudioPath  string `yaml:"audio"`

	SegmentDuration float64 `yaml:"segment_duration"`
	ZoomStart       float64 `yaml:"zoom_start"`
	ZoomEnd         float64 `yaml:"zoom_end"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	BatchSize int `yaml:"batch_size"`
	MaxVideos int `yaml:"max_videos"`

	Extensions []string `yaml:"extensions"`

	QRLink string `yaml:"qr_link"`

	VideoEncoder string `yaml:"-"`
	Quality      int    `yaml:"quality"`

	ShowStats bool `yaml:"stats"`
}

// SegmentParams carries everything the encoder needs for one segment.
type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	Filter        string
	Index         int
}

func Default() *Config {
	return &Config{
		OutputDir:       "output",
		NamePrefix:      "output_video",
		SegmentDuration: 2.0,
		ZoomStart:       1.0,
		ZoomEnd:         1.2,
		Width:           1280,
		Height:          720,
		FPS:             24,
		BatchSize:       10,
		Extensions:      []string{".jpg", ".jpeg", ".png"},
	}
}

func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if c.SegmentDuration <= 0 {
		return fmt.Errorf("segment duration must be positive, got %.2f", c.SegmentDuration)
	}
	if c.ZoomStart < 1.0 {
		return fmt.Errorf("start zoom must be at least 1.0, got %.2f", c.ZoomStart)
	}
	if c.ZoomEnd < c.ZoomStart {
		return fmt.Errorf("end zoom %.2f is below start zoom %.2f", c.ZoomEnd, c.ZoomStart)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	}
	// yuv420p needs even dimensions
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("frame size %dx%d must have even dimensions", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.MaxVideos < 0 {
		return fmt.Errorf("max videos cannot be negative, got %d", c.MaxVideos)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one image extension is required")
	}
	return nil
}
