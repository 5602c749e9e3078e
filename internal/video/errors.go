package video

import (
	"fmt"
)

// AudioLoadError reports an audio track that could not be read or probed.
type AudioLoadError struct {
	Path string
	Err  error
}

func (e *AudioLoadError) Error() string {
	return fmt.Sprintf("load audio %s: %v", e.Path, e.Err)
}

func (e *AudioLoadError) Unwrap() error {
	return e.Err
}

// EncodeError reports a failed ffmpeg encode or mux. Log carries the tail
// of the ffmpeg output for diagnosis.
type EncodeError struct {
	Path string
	Log  string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Log != "" {
		return fmt.Sprintf("encode %s: %v\n%s", e.Path, e.Err, e.Log)
	}
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// tail trims ffmpeg output to its last lines so errors stay readable.
func tail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
