// ABOUTME: WAV clip decoder
// ABOUTME: Walks RIFF chunks and decodes integer PCM data
package decode

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// WAV decodes RIFF/WAVE clips carrying integer PCM
type WAV struct{}

// Decode converts WAV bytes to int32 samples
func (WAV) Decode(ctx context.Context, data []byte) (*audio.Buffer, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("invalid WAV file: missing RIFF/WAVE header")
	}

	var (
		haveFmt    bool
		format     uint16
		channels   int
		sampleRate int
		bitDepth   int
		pcm        []byte
	)

	// Chunks are word aligned; a truncated final chunk is clipped, not rejected
	for pos := 12; pos+8 <= len(data); {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := data[pos+8:]
		if size < len(body) {
			body = body[:size]
		}

		switch id {
		case "fmt ":
			if len(body) < 16 {
				return nil, fmt.Errorf("invalid WAV file: fmt chunk too short")
			}
			format = binary.LittleEndian.Uint16(body[0:2])
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFmt = true
		case "data":
			pcm = body
		}

		pos += 8 + size + size%2
	}

	if !haveFmt {
		return nil, fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if format != wavFormatPCM && format != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV format tag %d", ErrUnsupported, format)
	}
	if channels == 0 || sampleRate == 0 {
		return nil, fmt.Errorf("invalid WAV file: %d channels at %d Hz", channels, sampleRate)
	}

	var samples []int32
	switch bitDepth {
	case 8:
		samples = make([]int32, len(pcm))
		for i, b := range pcm {
			// 8-bit WAV is unsigned
			samples[i] = audio.ScaleToInt24(int32(b)-128, 8)
		}
	case 16:
		samples = samplesFromS16LE(pcm)
	case 24:
		samples = make([]int32, len(pcm)/3)
		for i := range samples {
			samples[i] = audio.SampleFrom24Bit([3]byte{pcm[i*3], pcm[i*3+1], pcm[i*3+2]})
		}
	case 32:
		samples = make([]int32, len(pcm)/4)
		for i := range samples {
			samples[i] = audio.ScaleToInt24(int32(binary.LittleEndian.Uint32(pcm[i*4:])), 32)
		}
	default:
		return nil, fmt.Errorf("%w: %d-bit WAV", ErrUnsupported, bitDepth)
	}

	if len(samples) == 0 {
		return nil, ErrNoAudio
	}

	return &audio.Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    samples,
	}, nil
}
