package xyaudio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Every decoder returns up to frames interleaved frames scaled to [-1, 1].

// --- MP3 decoder ---

func decodeMP3(f *os.File, frames int) ([]float64, int, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, err
	}
	// go-mp3 always produces 16-bit little-endian stereo
	raw := make([]byte, frames*4)
	n, err := io.ReadFull(dec, raw)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, 0, err
	}
	raw = raw[:n-n%2]
	out := make([]float64, len(raw)/2)
	for i := range out {
		out[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*2:]))) / 32768
	}
	return out, 2, nil
}

// --- WAV decoder ---

func decodeWAV(f *os.File, frames int) ([]float64, int, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}
	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if channels < 1 || bitDepth < 8 {
		return nil, 0, fmt.Errorf("unsupported WAV layout: %d channels, %d bits", channels, bitDepth)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: channels, SampleRate: int(dec.SampleRate)},
		Data:   make([]int, frames*channels),
	}
	n, err := dec.PCMBuffer(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	n -= n % channels

	full := float64(int64(1) << (bitDepth - 1))
	out := make([]float64, n)
	for i := range n {
		s := buf.Data[i]
		if bitDepth == 8 {
			// 8-bit WAV is unsigned
			s -= 128
		}
		out[i] = float64(s) / full
	}
	return out, channels, nil
}

// --- FLAC decoder ---

func decodeFLAC(f *os.File, frames int) ([]float64, int, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, 0, err
	}

	channels := int(stream.Info.NChannels)
	full := float64(int64(1) << (int(stream.Info.BitsPerSample) - 1))
	out := make([]float64, 0, frames*channels)
	for len(out) < frames*channels {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		nSamples := int(frame.Subframes[0].NSamples)
		for i := 0; i < nSamples && len(out) < frames*channels; i++ {
			for ch := range channels {
				out = append(out, float64(frame.Subframes[ch].Samples[i])/full)
			}
		}
	}
	return out, channels, nil
}

// --- OGG Vorbis decoder ---

func decodeOGG(f *os.File, frames int) ([]float64, int, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, 0, err
	}
	channels := reader.Channels()
	samples := make([]float32, frames*channels)
	read := 0
	for read < len(samples) {
		n, err := reader.Read(samples[read:])
		read += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			break
		}
	}
	read -= read % channels

	out := make([]float64, read)
	for i := range read {
		s := float64(samples[i])
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = s
	}
	return out, channels, nil
}
