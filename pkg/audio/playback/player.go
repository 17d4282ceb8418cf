// ABOUTME: Clip player wiring decoders to an output device
// ABOUTME: Picks a decoder from the sniffed format and blocks until playback ends
package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
	"github.com/voiceturn/voiceturn-go/pkg/audio/decode"
	"github.com/voiceturn/voiceturn-go/pkg/audio/output"
	"github.com/voiceturn/voiceturn-go/pkg/audio/resample"
	"github.com/voiceturn/voiceturn-go/pkg/audio/sniff"
)

// ErrPlayback wraps every error returned by Play
var ErrPlayback = errors.New("audio playback failed")

// Config holds player configuration
type Config struct {
	// Output is the playback device (default: oto)
	Output output.Output

	// SampleRate and Channels fix the device layout (default: 48000 Hz stereo)
	SampleRate int
	Channels   int

	// DecoderFor picks a decoder for a sniffed format (default: decode.ForFormat)
	DecoderFor func(audio.Format) decode.Decoder
}

// Player renders clips on one output device
type Player struct {
	config Config
	opened bool
}

// New creates a player. The device is opened on first Play.
func New(config Config) *Player {
	if config.Output == nil {
		config.Output = output.NewOto()
	}
	if config.SampleRate == 0 {
		config.SampleRate = 48000
	}
	if config.Channels == 0 {
		config.Channels = 2
	}
	if config.DecoderFor == nil {
		config.DecoderFor = decode.ForFormat
	}

	return &Player{config: config}
}

// Play decodes the clip at path and blocks until it has been rendered
func (p *Player) Play(ctx context.Context, path string) error {
	log.Printf("Playing audio file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPlayback, err)
	}

	format := sniff.Detect(data)
	buf, err := p.config.DecoderFor(format).Decode(ctx, data)
	if err != nil {
		return fmt.Errorf("%w: decode %s clip: %w", ErrPlayback, format, err)
	}

	buf = resample.Buffer(Remix(buf, p.config.Channels), p.config.SampleRate)

	if !p.opened {
		if err := p.config.Output.Open(p.config.SampleRate, p.config.Channels); err != nil {
			return fmt.Errorf("%w: %w", ErrPlayback, err)
		}
		p.opened = true
	}

	if err := p.config.Output.Write(ctx, buf.Samples); err != nil {
		return fmt.Errorf("%w: %w", ErrPlayback, err)
	}

	log.Printf("Audio playback completed.")
	return nil
}

// Close releases the output device
func (p *Player) Close() error {
	return p.config.Output.Close()
}

// Remix maps buf onto the given channel count. Mono is duplicated, extra
// channels are averaged down to mono or dropped beyond the target count.
func Remix(buf *audio.Buffer, channels int) *audio.Buffer {
	if buf.Channels == channels || buf.Channels == 0 {
		return buf
	}

	frames := buf.Frames()
	out := make([]int32, frames*channels)

	for i := 0; i < frames; i++ {
		frame := buf.Samples[i*buf.Channels : (i+1)*buf.Channels]
		switch {
		case channels == 1:
			var sum int64
			for _, s := range frame {
				sum += int64(s)
			}
			out[i] = int32(sum / int64(len(frame)))
		case buf.Channels == 1:
			for ch := 0; ch < channels; ch++ {
				out[i*channels+ch] = frame[0]
			}
		default:
			for ch := 0; ch < channels; ch++ {
				if ch < buf.Channels {
					out[i*channels+ch] = frame[ch]
				}
			}
		}
	}

	return &audio.Buffer{
		SampleRate: buf.SampleRate,
		Channels:   channels,
		Samples:    out,
	}
}
