// Package xyaudio reads and writes curves as stereo "XY" audio, the format
// oscilloscope art uses: the left channel drives x and the right drives y.
package xyaudio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/olivier-w/epicycles/internal/curve"
)

// DefaultFrames is how many stereo frames Load reads when asked for none.
const DefaultFrames = 4096

// ErrUnsupportedFormat is returned for file extensions Load cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported format")

// SupportedExts lists the extensions Load accepts.
var SupportedExts = []string{".wav", ".mp3", ".flac", ".ogg"}

// IsSupportedExt reports whether ext (with dot, any case) can be loaded.
func IsSupportedExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range SupportedExts {
		if e == ext {
			return true
		}
	}
	return false
}

// Load decodes the first frames stereo frames of an audio file into a curve
// with coordinates in [-1, 1]. Mono files yield a curve on the real axis.
func Load(path string, frames int) (curve.Curve, error) {
	if frames <= 0 {
		frames = DefaultFrames
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupportedExt(ext) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(SupportedExts, ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, channels, err := decode(ext, f, frames)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	if channels < 1 {
		return nil, fmt.Errorf("decoding %s: no channels", filepath.Base(path))
	}
	return toCurve(samples, channels), nil
}

func decode(ext string, f *os.File, frames int) ([]float64, int, error) {
	switch ext {
	case ".mp3":
		return decodeMP3(f, frames)
	case ".wav":
		return decodeWAV(f, frames)
	case ".flac":
		return decodeFLAC(f, frames)
	case ".ogg":
		return decodeOGG(f, frames)
	default:
		return nil, 0, ErrUnsupportedFormat
	}
}

// toCurve takes interleaved samples; extra channels past the second are
// ignored.
func toCurve(samples []float64, channels int) curve.Curve {
	n := len(samples) / channels
	c := make(curve.Curve, n)
	for i := range n {
		x := samples[i*channels]
		var y float64
		if channels > 1 {
			y = samples[i*channels+1]
		}
		c[i] = complex(x, y)
	}
	return c
}

// Interleave converts pts to interleaved 16-bit stereo samples (x left, y
// right). Coordinates are scaled so the largest magnitude hits full scale.
func Interleave(pts []curve.Point) []int {
	peak := 0.0
	for _, p := range pts {
		peak = math.Max(peak, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if peak == 0 {
		peak = 1
	}

	data := make([]int, 0, 2*len(pts))
	for _, p := range pts {
		data = append(data, toPCM16(p.X/peak), toPCM16(p.Y/peak))
	}
	return data
}

// WriteWAV encodes pts as 16-bit stereo PCM through Interleave.
func WriteWAV(w io.WriteSeeker, pts []curve.Point, sampleRate int) error {
	data := Interleave(pts)
	enc := wav.NewEncoder(w, sampleRate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}
	return nil
}

func toPCM16(v float64) int {
	s := int(math.Round(v * 32767))
	if s > 32767 {
		s = 32767
	} else if s < -32768 {
		s = -32768
	}
	return s
}
