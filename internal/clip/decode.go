package clip

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no decoder handles.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrEmpty is returned when a decoder produced no frames.
	ErrEmpty = errors.New("clip has no samples")
)

// ResampleQuality is the beep resampling quality used when converting clips
// to the engine sample rate.
const ResampleQuality = 4

const decodeChunk = 1024

// IsAudioFile reports whether path has an extension Load can decode.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3", ".flac", ".ogg":
		return true
	}
	return false
}

// Load decodes the file at path and resamples it to rate.
// A zero rate keeps the file's own sample rate.
func Load(path string, rate beep.SampleRate) (*Clip, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsAudioFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	return Decode(filepath.Base(path), streamer, format, rate)
}

// Decode drains s into a new clip, resampling to rate when it differs from
// the source format. A zero rate keeps the source rate.
func Decode(name string, s beep.Streamer, format beep.Format, rate beep.SampleRate) (*Clip, error) {
	src := s
	if rate != 0 && rate != format.SampleRate {
		src = beep.Resample(ResampleQuality, format.SampleRate, rate, s)
		format.SampleRate = rate
	}

	var frames [][2]float64
	buf := make([][2]float64, decodeChunk)
	for {
		n, ok := src.Stream(buf)
		frames = append(frames, buf[:n]...)
		if !ok || n == 0 {
			break
		}
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("decode %s: %w", name, ErrEmpty)
	}

	return New(name, format, frames), nil
}
