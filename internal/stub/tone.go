// ABOUTME: Test tone generator for the stub endpoint
// ABOUTME: Renders a sine wave clip as WAV bytes
package stub

import (
	"context"
	"math"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
	"github.com/voiceturn/voiceturn-go/pkg/audio/encode"
)

const (
	// ToneSampleRate is the rate of generated clips
	ToneSampleRate = 24000
	// ToneFrequency is the A4 note
	ToneFrequency = 440.0
)

// ToneBuffer generates a mono sine wave at half volume
func ToneBuffer(seconds, frequency float64) *audio.Buffer {
	frames := int(math.Round(seconds * ToneSampleRate))
	samples := make([]int32, frames)

	for i := range samples {
		t := float64(i) / ToneSampleRate
		sample := math.Sin(2 * math.Pi * frequency * t)
		samples[i] = audio.SampleFromInt16(int16(sample * 32767.0 * 0.5))
	}

	return &audio.Buffer{
		SampleRate: ToneSampleRate,
		Channels:   1,
		Samples:    samples,
	}
}

// ToneWAV renders a tone clip as a 16-bit WAV file
func ToneWAV(seconds float64) ([]byte, error) {
	return encode.WAV{BitDepth: 16}.Encode(context.Background(), ToneBuffer(seconds, ToneFrequency))
}
