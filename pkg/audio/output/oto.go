// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays whole clips with live volume control using oto library
package output

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/voiceturn/voiceturn-go/pkg/audio/encode"
)

// drainPoll is how often Write checks whether the player has finished
const drainPoll = 10 * time.Millisecond

// Oto output implementation using oto library
type Oto struct {
	ctx        context.Context
	cancel     context.CancelFunc
	otoCtx     *oto.Context
	sampleRate int
	channels   int
	ready      bool

	mu     sync.Mutex
	volume int
	muted  bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	ctx, cancel := context.WithCancel(context.Background())

	return &Oto{
		ctx:    ctx,
		cancel: cancel,
		volume: 100,
	}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	if o.otoCtx != nil {
		// oto allows one context per process, so the layout cannot change
		if o.sampleRate != sampleRate || o.channels != channels {
			return fmt.Errorf("output already open at %dHz %dch, cannot switch to %dHz %dch",
				o.sampleRate, o.channels, sampleRate, channels)
		}
		if err := o.otoCtx.Resume(); err != nil {
			return fmt.Errorf("failed to resume oto context: %w", err)
		}
		o.ready = true
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Write plays samples and blocks until the player drains, ctx is done or
// Close is called
func (o *Oto) Write(ctx context.Context, samples []int32) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	data, err := encode.PCM{BitDepth: 16}.EncodeSamples(samples)
	if err != nil {
		return err
	}

	player := o.otoCtx.NewPlayer(bytes.NewReader(data))
	defer player.Close()

	// Volume changes apply to the clip already playing
	gain := o.gain()
	player.SetVolume(gain)
	player.Play()

	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-o.ctx.Done():
			return o.ctx.Err()
		case <-ticker.C:
			if g := o.gain(); g != gain {
				gain = g
				player.SetVolume(gain)
			}
		}
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	o.cancel()
	if o.otoCtx != nil && o.ready {
		o.ready = false
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.mu.Lock()
	o.volume = volume
	o.mu.Unlock()
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	o.muted = muted
	o.mu.Unlock()
}

func (o *Oto) gain() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return getVolumeMultiplier(o.volume, o.muted)
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
