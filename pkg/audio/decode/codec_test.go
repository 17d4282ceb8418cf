// ABOUTME: Tests for MP3, FLAC and Ogg Opus decoders
// ABOUTME: Tests header handling and rejection of corrupt clips
package decode

import (
	"context"
	"errors"
	"testing"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

func TestMP3Decode_Garbage(t *testing.T) {
	buf, err := MP3{}.Decode(context.Background(), []byte("ID3 but not really an mp3"))
	if err == nil {
		t.Fatalf("expected error, got %d samples", len(buf.Samples))
	}
}

func TestFLACDecode_Garbage(t *testing.T) {
	buf, err := FLAC{}.Decode(context.Background(), []byte("fLaC\x00\x00"))
	if err == nil {
		t.Fatalf("expected error, got %d samples", len(buf.Samples))
	}
}

// oggPage builds a first Ogg page carrying a single packet
func oggPage(packet []byte) []byte {
	page := []byte("OggS")
	page = append(page, 0x00, 0x02)      // version, BOS flag
	page = append(page, make([]byte, 20)...) // granule, serial, sequence, crc
	page = append(page, 1, byte(len(packet)))
	return append(page, packet...)
}

func TestOpusChannels(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		channels    int
		wantErr     bool
		unsupported bool
	}{
		{"mono", oggPage([]byte("OpusHead\x01\x01\x38\x01\x80\xBB\x00\x00\x00\x00\x00")), 1, false, false},
		{"stereo", oggPage([]byte("OpusHead\x01\x02\x38\x01\x80\xBB\x00\x00\x00\x00\x00")), 2, false, false},
		{"vorbis", oggPage([]byte("\x01vorbis\x00\x00\x00\x00\x02")), 0, true, true},
		{"not ogg", []byte("RIFF\x00\x00\x00\x00WAVE"), 0, true, false},
		{"truncated", []byte("OggS\x00\x02"), 0, true, false},
		{"zero channels", oggPage([]byte("OpusHead\x01\x00\x38\x01")), 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channels, err := OpusChannels(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d channels", channels)
				}
				if tt.unsupported && !errors.Is(err, ErrUnsupported) {
					t.Errorf("expected ErrUnsupported, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if channels != tt.channels {
				t.Errorf("expected %d channels, got %d", tt.channels, channels)
			}
		})
	}
}

type stubDecoder struct {
	calls int
}

func (s *stubDecoder) Decode(ctx context.Context, data []byte) (*audio.Buffer, error) {
	s.calls++
	return &audio.Buffer{SampleRate: 8000, Channels: 1, Samples: []int32{1}}, nil
}

func TestOpusDecode_NonOpusUsesFallback(t *testing.T) {
	fallback := &stubDecoder{}
	dec := Opus{Fallback: fallback}

	buf, err := dec.Decode(context.Background(), oggPage([]byte("\x01vorbis\x00\x00\x00\x00\x02")))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if fallback.calls != 1 {
		t.Errorf("expected fallback to be called once, got %d", fallback.calls)
	}
	if buf.SampleRate != 8000 {
		t.Errorf("expected fallback buffer, got %d Hz", buf.SampleRate)
	}
}

func TestOpusDecode_NonOpusWithoutFallback(t *testing.T) {
	_, err := Opus{}.Decode(context.Background(), oggPage([]byte("\x01vorbis\x00\x00\x00\x00\x02")))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestOpusDecode_CorruptHeaderSkipsFallback(t *testing.T) {
	fallback := &stubDecoder{}
	_, err := Opus{Fallback: fallback}.Decode(context.Background(), []byte("OggS\x00"))
	if err == nil {
		t.Fatal("expected error for truncated page")
	}
	if fallback.calls != 0 {
		t.Errorf("expected fallback not to be called, got %d calls", fallback.calls)
	}
}
