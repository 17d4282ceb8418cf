// ABOUTME: Tests for decoder lookup and shared helpers
// ABOUTME: Tests format to decoder mapping
package decode

import (
	"testing"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

func TestForFormat(t *testing.T) {
	tests := []struct {
		format   audio.Format
		expected Decoder
	}{
		{audio.FormatMP3, MP3{}},
		{audio.FormatFLAC, FLAC{}},
		{audio.FormatWAV, WAV{}},
		{audio.FormatOGG, Opus{Fallback: FFmpeg{}}},
		{audio.FormatM4A, FFmpeg{}},
		{audio.FormatUnknown, FFmpeg{}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := ForFormat(tt.format); got != tt.expected {
				t.Errorf("ForFormat(%s) = %#v, want %#v", tt.format, got, tt.expected)
			}
		})
	}
}

func TestSamplesFromS16LE(t *testing.T) {
	// 0x00, 0x01 -> 0x0100 = 256 -> 256<<8
	// 0xFE, 0xFF -> -2 -> -2<<8
	// trailing odd byte is dropped
	samples := samplesFromS16LE([]byte{0x00, 0x01, 0xFE, 0xFF, 0x7F})

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0] != 256<<8 {
		t.Errorf("expected first sample %d, got %d", 256<<8, samples[0])
	}
	if samples[1] != -2<<8 {
		t.Errorf("expected second sample %d, got %d", -2<<8, samples[1])
	}
}
