package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.InputDir = "/some/pics"
	return cfg
}

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"missing input", func(c *Config) { c.InputDir = "" }, "input directory"},
		{"zero duration", func(c *Config) { c.SegmentDuration = 0 }, "duration"},
		{"negative duration", func(c *Config) { c.SegmentDuration = -1 }, "duration"},
		{"zoom below one", func(c *Config) { c.ZoomStart = 0.5 }, "start zoom"},
		{"zoom end below start", func(c *Config) { c.ZoomStart, c.ZoomEnd = 1.3, 1.1 }, "end zoom"},
		{"zero width", func(c *Config) { c.Width = 0 }, "frame size"},
		{"odd height", func(c *Config) { c.Height = 721 }, "even"},
		{"zero fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, "batch size"},
		{"negative max videos", func(c *Config) { c.MaxVideos = -1 }, "max videos"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	doc := `
input_dir: /photos/holiday
segment_duration: 3.5
batch_size: 5
zoom_end: 1.3
audio: /music/song.mp3
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/photos/holiday", cfg.InputDir)
	assert.InDelta(t, 3.5, cfg.SegmentDuration, 1e-9)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.InDelta(t, 1.3, cfg.ZoomEnd, 1e-9)
	assert.Equal(t, "/music/song.mp3", cfg.AudioPath)

	// options missing from the file keep their defaults
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 24, cfg.FPS)
	assert.InDelta(t, 1.0, cfg.ZoomStart, 1e-9)
	assert.Equal(t, []string{".jpg", ".jpeg", ".png"}, cfg.Extensions)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir:\n\t- tabs are not yaml"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
