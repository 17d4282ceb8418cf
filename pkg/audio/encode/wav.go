// ABOUTME: WAV audio encoder
// ABOUTME: Wraps PCM samples in a 44-byte RIFF/WAVE header
package encode

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

// WAV encodes a canonical PCM WAV file. BitDepth 0 means 16.
type WAV struct {
	BitDepth int
}

// Encode converts a buffer to WAV bytes
func (e WAV) Encode(ctx context.Context, buf *audio.Buffer) ([]byte, error) {
	if buf.Channels <= 0 || buf.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid WAV layout: %d channels at %d Hz", buf.Channels, buf.SampleRate)
	}

	pcm := PCM{BitDepth: e.BitDepth}
	data, err := pcm.Encode(ctx, buf)
	if err != nil {
		return nil, err
	}

	bitsPerSample := pcm.bitDepth()
	byteRate := buf.SampleRate * buf.Channels * bitsPerSample / 8
	blockAlign := buf.Channels * bitsPerSample / 8

	header := make([]byte, 44)

	// RIFF chunk descriptor
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(data)))
	copy(header[8:12], "WAVE")

	// fmt sub-chunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(buf.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(buf.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	// data sub-chunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(data)))

	return append(header, data...), nil
}
