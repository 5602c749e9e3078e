package video

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeAudio returns the duration of the audio file in seconds, or an
// AudioLoadError if the file cannot be read or carries no usable duration.
func ProbeAudio(path string) (float64, error) {
	probe, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, &AudioLoadError{Path: path, Err: err}
	}

	dur, err := parseProbeDuration(probe)
	if err != nil {
		return 0, &AudioLoadError{Path: path, Err: err}
	}
	return dur, nil
}

func parseProbeDuration(probe string) (float64, error) {
	var data struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return 0, errors.WithStack(err)
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(data.Format.Duration), 64)
	if err != nil || dur <= 0 {
		return 0, errors.New("could not determine audio duration")
	}
	return dur, nil
}
