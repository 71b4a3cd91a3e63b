package grove

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// PlayOptions controls a single playback trigger.
type PlayOptions struct {
	// Volume in [0, 1]. The zero value means full volume.
	Volume float64
	// Loop repeats the sound until Stop is called.
	Loop bool
}

// AudioPlayer is the audio collaborator contract: named triggers only.
// The core does not manage decoding, mixing, or device lifecycle.
// Playing or stopping a key that was never loaded is a silent no-op.
type AudioPlayer interface {
	Load(key string, src io.ReadCloser) error
	Play(key string, opts PlayOptions)
	Stop(key string)
}

// AudioConfig configures the beep-backed audio player.
type AudioConfig struct {
	// SampleRate of the output device. Defaults to 48000.
	SampleRate int
	// Disabled skips device initialization entirely; Play and Stop become
	// no-ops while Load keeps decoding. Useful for tests and headless runs.
	Disabled bool
}

// Audio is the beep-backed AudioPlayer: an owned registry mapping keys to
// decoded sample buffers. If the output device cannot be initialized the
// player degrades to silent no-ops rather than reporting errors on every
// trigger.
type Audio struct {
	sampleRate beep.SampleRate
	buffers    map[string]*beep.Buffer
	playing    map[string]*beep.Ctrl
	disabled   bool
}

// NewAudio creates an audio player and initializes the output device.
func NewAudio(cfg AudioConfig) *Audio {
	sr := beep.SampleRate(cfg.SampleRate)
	if sr <= 0 {
		sr = 48000
	}
	a := &Audio{
		sampleRate: sr,
		buffers:    make(map[string]*beep.Buffer),
		playing:    make(map[string]*beep.Ctrl),
		disabled:   cfg.Disabled,
	}
	if !a.disabled {
		if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
			a.disabled = true
		}
	}
	return a
}

// Disabled reports whether the player is running in silent mode.
func (a *Audio) Disabled() bool {
	return a.disabled
}

// Load decodes WAV data from src and registers it under key, replacing any
// previous sound with that key. Sounds with a different sample rate are
// resampled to the device rate. src is closed by the decoder.
func (a *Audio) Load(key string, src io.ReadCloser) error {
	streamer, format, err := wav.Decode(src)
	if err != nil {
		return fmt.Errorf("load sound %q: %w", key, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  a.sampleRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	if format.SampleRate == a.sampleRate {
		buf.Append(streamer)
	} else {
		buf.Append(beep.Resample(4, format.SampleRate, a.sampleRate, streamer))
	}
	a.buffers[key] = buf
	return nil
}

// Play starts playback of the named sound. Unknown keys are a silent no-op.
// Playing a key already playing starts an overlapping voice; Stop affects
// the most recently started one.
func (a *Audio) Play(key string, opts PlayOptions) {
	buf, ok := a.buffers[key]
	if !ok || a.disabled {
		return
	}

	var streamer beep.Streamer = buf.Streamer(0, buf.Len())
	if opts.Loop {
		streamer = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}

	vol := opts.Volume
	if vol == 0 {
		vol = 1
	}
	if vol < 1 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   math.Log2(math.Max(vol, 1e-4)),
			Silent:   vol <= 0,
		}
	}

	ctrl := &beep.Ctrl{Streamer: streamer}
	a.playing[key] = ctrl
	speaker.Play(ctrl)
}

// Stop pauses the most recently started playback of the named sound.
// Unknown or already-stopped keys are a silent no-op.
func (a *Audio) Stop(key string) {
	ctrl, ok := a.playing[key]
	if !ok {
		return
	}
	delete(a.playing, key)
	if a.disabled {
		return
	}
	speaker.Lock()
	ctrl.Paused = true
	ctrl.Streamer = nil
	speaker.Unlock()
}

// Loaded reports whether a sound is registered under key.
func (a *Audio) Loaded(key string) bool {
	_, ok := a.buffers[key]
	return ok
}
