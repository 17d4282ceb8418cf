// ABOUTME: Tests for the audio payload pipeline
// ABOUTME: Tests error classes, conversion path and advisory playback
package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
	"github.com/voiceturn/voiceturn-go/pkg/audio/payload"
	"github.com/voiceturn/voiceturn-go/pkg/audio/store"
)

type fakeTranscoder struct {
	err error
}

func (f fakeTranscoder) Transcode(ctx context.Context, data []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("ID3converted"), nil
}

type fakePlayer struct {
	paths []string
	err   error
}

func (f *fakePlayer) Play(ctx context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

func newStore(t *testing.T, tc store.Transcoder) *store.Store {
	t.Helper()
	s, err := store.New(store.Config{Dir: t.TempDir(), Transcoder: tc})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func unpadded(data []byte) string {
	return strings.TrimRight(base64.StdEncoding.EncodeToString(data), "=")
}

func TestProcess_KnownFormat(t *testing.T) {
	s := newStore(t, fakeTranscoder{})
	p := New(s, nil)
	clip := []byte{0x49, 0x44, 0x33, 0x04, 0x00, 0x00, 0x00}

	result, err := p.Process(context.Background(), unpadded(clip), false)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if result.Format != audio.FormatMP3 || result.Converted {
		t.Errorf("expected unconverted mp3, got %+v", result)
	}
	if filepath.Ext(result.Path) != ".mp3" {
		t.Errorf("expected .mp3 file, got %s", result.Path)
	}

	written, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(written) != string(clip) {
		t.Errorf("file content %v differs from decoded bytes %v", written, clip)
	}
}

func TestProcess_UnknownFormatConverted(t *testing.T) {
	p := New(newStore(t, fakeTranscoder{}), nil)

	result, err := p.Process(context.Background(), unpadded([]byte("FORM\x00\x00\x00\x00AIFF")), false)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if !result.Converted || result.Format != audio.FormatUnknown {
		t.Errorf("expected converted clip, got %+v", result)
	}
	if !strings.HasPrefix(filepath.Base(result.Path), store.DefaultConvertedPrefix+"_") {
		t.Errorf("expected converted prefix, got %s", result.Path)
	}
}

func TestProcess_MalformedPayload(t *testing.T) {
	s := newStore(t, fakeTranscoder{})
	p := New(s, nil)

	result, err := p.Process(context.Background(), "SUQz!", false)
	if !errors.Is(err, payload.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}

	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 0 {
		t.Errorf("expected no files, got %d", len(entries))
	}
}

func TestProcess_EmptyPayload(t *testing.T) {
	p := New(newStore(t, fakeTranscoder{}), nil)

	_, err := p.Process(context.Background(), "", false)
	if !errors.Is(err, ErrEmptyAudio) {
		t.Fatalf("expected ErrEmptyAudio, got %v", err)
	}
}

func TestProcess_PersistFailure(t *testing.T) {
	s := newStore(t, fakeTranscoder{err: errors.New("not audio")})
	player := &fakePlayer{}
	p := New(s, player)

	_, err := p.Process(context.Background(), unpadded([]byte("plain text")), true)

	var perr *store.PersistError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *store.PersistError, got %v", err)
	}
	if len(player.paths) != 0 {
		t.Error("player must not run when nothing was saved")
	}
}

func TestProcess_Playback(t *testing.T) {
	player := &fakePlayer{}
	p := New(newStore(t, fakeTranscoder{}), player)

	result, err := p.Process(context.Background(), unpadded([]byte("OggS\x00\x02")), true)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if !result.Played {
		t.Error("expected Played to be true")
	}
	if len(player.paths) != 1 || player.paths[0] != result.Path {
		t.Errorf("expected player to get %s, got %v", result.Path, player.paths)
	}
}

func TestProcess_PlaybackSkipped(t *testing.T) {
	player := &fakePlayer{}
	p := New(newStore(t, fakeTranscoder{}), player)

	result, err := p.Process(context.Background(), unpadded([]byte("fLaC")), false)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if result.Played || len(player.paths) != 0 {
		t.Error("expected playback to be skipped")
	}
}

func TestProcess_PlaybackFailureIsAdvisory(t *testing.T) {
	playErr := errors.New("no audio device")
	p := New(newStore(t, fakeTranscoder{}), &fakePlayer{err: playErr})

	result, err := p.Process(context.Background(), unpadded([]byte("RIFF\x00\x00\x00\x00WAVE")), true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !errors.Is(result.PlaybackErr, playErr) {
		t.Errorf("expected playback error on result, got %v", result.PlaybackErr)
	}
	if result.Played {
		t.Error("expected Played to be false")
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Errorf("file must survive a playback failure: %v", err)
	}
}

func TestProcess_NoPlayerConfigured(t *testing.T) {
	p := New(newStore(t, fakeTranscoder{}), nil)

	result, err := p.Process(context.Background(), unpadded([]byte("ID3")), true)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if result.Played || result.PlaybackErr != nil {
		t.Errorf("expected no playback attempt, got %+v", result)
	}
}
