// ABOUTME: FLAC clip decoder
// ABOUTME: Decodes FLAC audio to int32 samples with mewkiz/flac
package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

// FLAC decodes native FLAC streams
type FLAC struct{}

// Decode converts FLAC bytes to int32 samples
func (FLAC) Decode(ctx context.Context, data []byte) (*audio.Buffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	bitDepth := int(stream.Info.BitsPerSample)

	var samples []int32
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac frame error: %w", err)
		}

		// Interleave subframes, scaled to 24-bit range
		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, audio.ScaleToInt24(frame.Subframes[ch].Samples[i], bitDepth))
			}
		}
	}

	if len(samples) == 0 {
		return nil, ErrNoAudio
	}

	return &audio.Buffer{
		SampleRate: int(stream.Info.SampleRate),
		Channels:   channels,
		Samples:    samples,
	}, nil
}
