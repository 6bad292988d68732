// Package sound plays the traced curve as XY audio, so an oscilloscope in XY
// mode wired to the speaker outputs draws the same figure.
package sound

import (
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/olivier-w/epicycles/internal/curve"
	"github.com/olivier-w/epicycles/internal/xyaudio"
)

const (
	SampleRate   = 44100
	channelCount = 2
)

// Player loops one lap of the curve on the default output device.
type Player struct {
	mu        sync.Mutex
	loop      *Loop
	otoPlayer *oto.Player
	volume    float64
	paused    bool
	closed    bool
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// New opens the audio device. The player starts paused and silent.
func New() (*Player, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, err
	}
	p := &Player{
		loop:   &Loop{},
		volume: 0.5,
		paused: true,
	}
	p.otoPlayer = ctx.NewPlayer(p.loop)
	p.otoPlayer.SetVolume(p.volume)
	return p, nil
}

// SetCurve loops pts, one point per stereo frame, scaled to full volume.
func (p *Player) SetCurve(pts []curve.Point) {
	p.loop.Set(xyaudio.Interleave(pts))
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.paused {
		p.otoPlayer.Play()
	} else {
		p.otoPlayer.Pause()
	}
	p.paused = !p.paused
}

// Paused returns whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// AdjustVolume changes the volume by delta, clamped to [0, 1].
func (p *Player) AdjustVolume(delta float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(max(p.volume+delta, 0), 1)
	p.otoPlayer.SetVolume(p.volume)
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Close stops playback and releases the device player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.otoPlayer.Pause()
	return p.otoPlayer.Close()
}
