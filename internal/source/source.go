package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirectoryNotFoundError reports an input path that does not exist or is
// not a directory.
type DirectoryNotFoundError struct {
	Path string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("image directory not found: %s", e.Path)
}

// Source provides the ordered list of images feeding one run.
type Source interface {
	Count() int
	Paths() []string
	Close() error
}

// ImageSource lists the image files of a single directory, filtered by
// extension and sorted lexicographically by filename.
type ImageSource struct {
	paths []string
}

// NewImageSource scans dir for files matching the extension set. Extensions
// are matched case-insensitively. An empty directory is not an error.
func NewImageSource(dir string, extensions []string) (*ImageSource, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, &DirectoryNotFoundError{Path: dir}
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryNotFoundError{Path: dir}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if allowed[ext] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) Count() int {
	return len(s.paths)
}

// Paths returns the discovered files in their fixed order.
func (s *ImageSource) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Dimensions reads the pixel size of the image at index without decoding
// the full raster.
func (s *ImageSource) Dimensions(index int) (int, int, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func (s *ImageSource) Close() error {
	return nil
}

// Batches splits paths into groups of size, in order. When maxVideos is
// positive only the first maxVideos groups are returned.
func Batches(paths []string, size, maxVideos int) [][]string {
	if size < 1 || len(paths) == 0 {
		return nil
	}

	var batches [][]string
	for i := 0; i < len(paths); i += size {
		end := i + size
		if end > len(paths) {
			end = len(paths)
		}
		batches = append(batches, paths[i:end])
	}

	if maxVideos > 0 && len(batches) > maxVideos {
		batches = batches[:maxVideos]
	}
	return batches
}
