// ABOUTME: Ogg Opus clip decoder
// ABOUTME: Decodes Ogg Opus audio with libopus, other Ogg codecs go to a fallback
package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// opusSampleRate is fixed by libopusfile
const opusSampleRate = 48000

// Opus decodes Ogg Opus clips. Ogg clips carrying another codec
// (Vorbis, Speex) are handed to Fallback when it is set.
type Opus struct {
	Fallback Decoder
}

// Decode converts Ogg Opus bytes to int32 samples
func (d Opus) Decode(ctx context.Context, data []byte) (*audio.Buffer, error) {
	channels, err := OpusChannels(data)
	if err != nil {
		if d.Fallback != nil && errors.Is(err, ErrUnsupported) {
			return d.Fallback.Decode(ctx, data)
		}
		return nil, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open opus stream: %w", err)
	}
	defer stream.Close()

	// Read returns samples per channel; 120ms is the largest Opus frame
	pcm16 := make([]int16, 5760*channels)
	var samples []int32
	for {
		n, err := stream.Read(pcm16)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opus decode failed: %w", err)
		}
		for i := 0; i < n*channels; i++ {
			samples = append(samples, audio.SampleFromInt16(pcm16[i]))
		}
	}

	if len(samples) == 0 {
		return nil, ErrNoAudio
	}

	return &audio.Buffer{
		SampleRate: opusSampleRate,
		Channels:   channels,
		Samples:    samples,
	}, nil
}

// OpusChannels reads the channel count from the OpusHead packet on the
// first Ogg page. Returns ErrUnsupported when the stream is not Opus.
func OpusChannels(data []byte) (int, error) {
	if len(data) < 27 || string(data[0:4]) != "OggS" {
		return 0, fmt.Errorf("invalid Ogg stream: missing page header")
	}

	// 27-byte page header followed by the segment table
	start := 27 + int(data[26])
	if len(data) < start+8 {
		return 0, fmt.Errorf("invalid Ogg stream: first page truncated")
	}
	if string(data[start:start+8]) != "OpusHead" {
		return 0, fmt.Errorf("%w: Ogg stream is not Opus", ErrUnsupported)
	}
	if len(data) < start+10 {
		return 0, fmt.Errorf("invalid Ogg stream: OpusHead truncated")
	}

	channels := int(data[start+9])
	if channels == 0 {
		return 0, fmt.Errorf("invalid Ogg stream: zero channels")
	}
	return channels, nil
}
