// ABOUTME: Sequential audio pipeline for one response payload
// ABOUTME: Classifies decode, persist and playback failures
package pipeline

import (
	"context"
	"errors"
	"log"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
	"github.com/voiceturn/voiceturn-go/pkg/audio/payload"
	"github.com/voiceturn/voiceturn-go/pkg/audio/sniff"
)

// ErrEmptyAudio is returned when the payload decodes to zero bytes
var ErrEmptyAudio = errors.New("decoded audio bytes are empty")

// Saver persists a clip; implemented by *store.Store
type Saver interface {
	Save(ctx context.Context, data []byte, f audio.Format) (string, error)
}

// Player renders a saved clip; implemented by *playback.Player
type Player interface {
	Play(ctx context.Context, path string) error
}

// Result describes a processed payload
type Result struct {
	Format      audio.Format // FormatUnknown when the clip was converted
	Path        string
	Converted   bool
	Played      bool
	PlaybackErr error
}

// Pipeline runs decode, sniff, save and play for a payload
type Pipeline struct {
	saver  Saver
	player Player
}

// New creates a pipeline. player may be nil when playback is never wanted.
func New(saver Saver, player Player) *Pipeline {
	return &Pipeline{saver: saver, player: player}
}

// Process turns a base64 payload into a saved file. A playback failure is
// reported on the result, never as the returned error.
func (p *Pipeline) Process(ctx context.Context, encoded string, play bool) (*Result, error) {
	data, err := payload.Decode(encoded)
	if err != nil {
		log.Printf("Base64 decoding failed: %v", err)
		return nil, err
	}
	if len(data) == 0 {
		log.Printf("Decoded audio bytes are empty.")
		return nil, ErrEmptyAudio
	}
	log.Printf("Audio data successfully decoded from Base64 (%d bytes).", len(data))

	format := sniff.Detect(data)
	if format.Known() {
		log.Printf("Detected audio format: %s", format)
	} else {
		log.Printf("Unknown audio format based on magic numbers.")
	}

	path, err := p.saver.Save(ctx, data, format)
	if err != nil {
		log.Printf("Failed to save audio: %v", err)
		return nil, err
	}

	result := &Result{
		Format:    format,
		Path:      path,
		Converted: !format.Known(),
	}

	if !play {
		log.Printf("Audio playback skipped.")
		return result, nil
	}
	if p.player == nil {
		log.Printf("Audio playback requested but no player is configured.")
		return result, nil
	}

	if err := p.player.Play(ctx, path); err != nil {
		log.Printf("Failed to play audio file: %v", err)
		result.PlaybackErr = err
		return result, nil
	}
	result.Played = true
	return result, nil
}
