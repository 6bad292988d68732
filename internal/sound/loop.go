package sound

import (
	"encoding/binary"
	"sync"
)

// Loop is an endless io.Reader over a 16-bit little-endian PCM buffer. An
// empty loop reads as silence so the output device never starves.
type Loop struct {
	mu  sync.Mutex
	pcm []byte
	pos int
}

// Set replaces the looped samples. Playback continues from the same offset
// into the new buffer, wrapped to its length and aligned to a frame.
func (l *Loop) Set(samples []int) {
	pcm := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(int16(s)))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.pcm = pcm
	if len(pcm) == 0 {
		l.pos = 0
	} else {
		l.pos %= len(pcm)
		l.pos -= l.pos % (2 * channelCount)
	}
}

// Len is the number of bytes in one pass of the loop.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pcm)
}

func (l *Loop) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pcm) == 0 {
		clear(p)
		return len(p), nil
	}
	n := 0
	for n < len(p) {
		c := copy(p[n:], l.pcm[l.pos:])
		n += c
		l.pos = (l.pos + c) % len(l.pcm)
	}
	return n, nil
}
