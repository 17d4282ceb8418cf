// ABOUTME: Fallback transcoder for clips with no recognized signature
// ABOUTME: Generic ffmpeg decode followed by mp3 encode
package store

import (
	"context"
	"fmt"

	"github.com/voiceturn/voiceturn-go/pkg/audio/decode"
	"github.com/voiceturn/voiceturn-go/pkg/audio/encode"
)

// Transcoder converts an arbitrary clip to the normalized output format
type Transcoder interface {
	Transcode(ctx context.Context, data []byte) ([]byte, error)
}

// FFmpegTranscoder decodes with any Decoder (default: ffmpeg auto-detect)
// and re-encodes with any Encoder (default: ffmpeg mp3)
type FFmpegTranscoder struct {
	Decoder decode.Decoder
	Encoder encode.Encoder
}

// Transcode converts data to mp3
func (t FFmpegTranscoder) Transcode(ctx context.Context, data []byte) ([]byte, error) {
	dec := t.Decoder
	if dec == nil {
		dec = decode.FFmpeg{}
	}
	enc := t.Encoder
	if enc == nil {
		enc = encode.MP3{}
	}

	buf, err := dec.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("generic decode failed: %w", err)
	}
	if len(buf.Samples) == 0 {
		return nil, fmt.Errorf("generic decode failed: %w", decode.ErrNoAudio)
	}

	out, err := enc.Encode(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("re-encode failed: %w", err)
	}
	return out, nil
}
