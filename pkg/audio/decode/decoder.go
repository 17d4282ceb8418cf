// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all clip decoders and format lookup
package decode

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

var (
	// ErrNoAudio is returned when a clip decodes to zero samples
	ErrNoAudio = errors.New("no audio samples decoded")

	// ErrUnsupported is returned for clips a decoder cannot handle
	ErrUnsupported = errors.New("unsupported audio encoding")
)

// Decoder decodes a complete clip to PCM
type Decoder interface {
	Decode(ctx context.Context, data []byte) (*audio.Buffer, error)
}

// ForFormat returns the decoder for a detected container format.
// Unknown formats and m4a go through ffmpeg.
func ForFormat(f audio.Format) Decoder {
	switch f {
	case audio.FormatMP3:
		return MP3{}
	case audio.FormatFLAC:
		return FLAC{}
	case audio.FormatWAV:
		return WAV{}
	case audio.FormatOGG:
		return Opus{Fallback: FFmpeg{}}
	default:
		return FFmpeg{}
	}
}

// samplesFromS16LE converts interleaved 16-bit little-endian PCM
func samplesFromS16LE(data []byte) []int32 {
	numSamples := len(data) / 2
	samples := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}
	return samples
}
