// ABOUTME: PCM audio encoder
// ABOUTME: Encodes int32 samples to 16-bit or 24-bit little-endian PCM bytes
package encode

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

// PCM encodes raw little-endian PCM. BitDepth 0 means 16.
type PCM struct {
	BitDepth int
}

// Encode converts int32 samples to PCM bytes
func (e PCM) Encode(ctx context.Context, buf *audio.Buffer) ([]byte, error) {
	return e.encodeSamples(buf.Samples)
}

// EncodeSamples converts a bare sample slice, for streaming writers
func (e PCM) EncodeSamples(samples []int32) ([]byte, error) {
	return e.encodeSamples(samples)
}

func (e PCM) encodeSamples(samples []int32) ([]byte, error) {
	switch e.bitDepth() {
	case 24:
		output := make([]byte, len(samples)*3)
		for i, sample := range samples {
			b := audio.SampleTo24Bit(sample)
			copy(output[i*3:], b[:])
		}
		return output, nil
	case 16:
		output := make([]byte, len(samples)*2)
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(output[i*2:], uint16(audio.SampleToInt16(sample)))
		}
		return output, nil
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", e.BitDepth)
	}
}

func (e PCM) bitDepth() int {
	if e.BitDepth == 0 {
		return 16
	}
	return e.BitDepth
}
