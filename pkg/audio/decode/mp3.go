// ABOUTME: MP3 clip decoder
// ABOUTME: Decodes MP3 audio to int32 samples with go-mp3
package decode

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

// MP3 decodes MPEG audio layer III clips
type MP3 struct{}

// Decode converts MP3 bytes to int32 samples. go-mp3 always outputs
// 16-bit stereo at the stream's sample rate.
func (MP3) Decode(ctx context.Context, data []byte) (*audio.Buffer, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}

	return &audio.Buffer{
		SampleRate: decoder.SampleRate(),
		Channels:   2,
		Samples:    samplesFromS16LE(pcm),
	}, nil
}
