package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeDuration(t *testing.T) {
	dur, err := parseProbeDuration(`{"format":{"duration":"12.345000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.345, dur, 1e-9)
}

func TestParseProbeDurationMissing(t *testing.T) {
	_, err := parseProbeDuration(`{"format":{}}`)
	assert.Error(t, err)
}

func TestParseProbeDurationBadJSON(t *testing.T) {
	_, err := parseProbeDuration(`not json`)
	assert.Error(t, err)
}

func TestParseProbeDurationZero(t *testing.T) {
	_, err := parseProbeDuration(`{"format":{"duration":"0.0"}}`)
	assert.Error(t, err)
}

func TestProbeAudioMissingFile(t *testing.T) {
	_, err := ProbeAudio("/does/not/exist.mp3")

	var loadErr *AudioLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "/does/not/exist.mp3", loadErr.Path)
}
