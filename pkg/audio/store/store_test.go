// ABOUTME: Tests for audio clip persistence
// ABOUTME: Tests naming, verbatim writes, transcoding decisions and failures
package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

type fakeTranscoder struct {
	output []byte
	err    error
	calls  int
	input  []byte
}

func (f *fakeTranscoder) Transcode(ctx context.Context, data []byte) ([]byte, error) {
	f.calls++
	f.input = data
	return f.output, f.err
}

func newTestStore(t *testing.T, tc Transcoder) *Store {
	t.Helper()
	s, err := New(Config{Dir: filepath.Join(t.TempDir(), "output"), Transcoder: tc})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if _, err := New(Config{Dir: dir}); err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory %s to exist", dir)
	}

	// Existing directory is fine
	if _, err := New(Config{Dir: dir}); err != nil {
		t.Errorf("second New on existing directory failed: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	s, err := New(Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if s.config.Prefix != DefaultPrefix {
		t.Errorf("expected prefix %q, got %q", DefaultPrefix, s.config.Prefix)
	}
	if s.config.ConvertedPrefix != DefaultConvertedPrefix {
		t.Errorf("expected converted prefix %q, got %q", DefaultConvertedPrefix, s.config.ConvertedPrefix)
	}
	if _, ok := s.config.Transcoder.(FFmpegTranscoder); !ok {
		t.Errorf("expected FFmpegTranscoder by default, got %T", s.config.Transcoder)
	}
}

func TestNew_RequiresDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestFilename(t *testing.T) {
	pattern := regexp.MustCompile(`^response_audio_[0-9a-f]{32}\.wav$`)

	name := Filename("response_audio", audio.FormatWAV)
	if !pattern.MatchString(name) {
		t.Errorf("filename %q does not match %s", name, pattern)
	}

	if Filename("x", audio.FormatMP3) == Filename("x", audio.FormatMP3) {
		t.Error("expected distinct filenames")
	}
}

func TestSave_KnownFormatVerbatim(t *testing.T) {
	formats := []audio.Format{
		audio.FormatMP3,
		audio.FormatWAV,
		audio.FormatOGG,
		audio.FormatFLAC,
		audio.FormatM4A,
	}

	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			tc := &fakeTranscoder{}
			s := newTestStore(t, tc)
			data := []byte{0x49, 0x44, 0x33, 0x00, 0xFF, 0x10}

			path, err := s.Save(context.Background(), data, f)
			if err != nil {
				t.Fatalf("save failed: %v", err)
			}

			if filepath.Dir(path) != s.Dir() {
				t.Errorf("expected file in %s, got %s", s.Dir(), path)
			}
			base := filepath.Base(path)
			if !strings.HasPrefix(base, DefaultPrefix+"_") || strings.HasPrefix(base, DefaultConvertedPrefix) {
				t.Errorf("unexpected prefix in %s", base)
			}
			if filepath.Ext(path) != "."+f.Extension() {
				t.Errorf("expected extension .%s, got %s", f.Extension(), filepath.Ext(path))
			}

			written, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read saved file: %v", err)
			}
			if !bytes.Equal(written, data) {
				t.Errorf("saved bytes differ: got %v, want %v", written, data)
			}
			if tc.calls != 0 {
				t.Errorf("transcoder called %d times for known format", tc.calls)
			}
		})
	}
}

func TestSave_CustomPrefixes(t *testing.T) {
	s, err := New(Config{
		Dir:             t.TempDir(),
		Prefix:          "reply",
		ConvertedPrefix: "reply_converted",
		Transcoder:      &fakeTranscoder{output: []byte("mp3")},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path, err := s.Save(context.Background(), []byte("OggS"), audio.FormatOGG)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "reply_") {
		t.Errorf("expected reply_ prefix, got %s", path)
	}

	path, err = s.Save(context.Background(), []byte("????"), audio.FormatUnknown)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "reply_converted_") {
		t.Errorf("expected reply_converted_ prefix, got %s", path)
	}
}

func TestSave_UnknownFormatTranscodes(t *testing.T) {
	tc := &fakeTranscoder{output: []byte("converted mp3 bytes")}
	s := newTestStore(t, tc)
	data := []byte("FORM\x00\x00\x00\x10AIFF")

	path, err := s.Save(context.Background(), data, audio.FormatUnknown)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if tc.calls != 1 {
		t.Fatalf("expected transcoder to be called once, got %d", tc.calls)
	}
	if !bytes.Equal(tc.input, data) {
		t.Error("transcoder did not receive the original bytes")
	}

	pattern := regexp.MustCompile(`^response_audio_converted_[0-9a-f]{32}\.mp3$`)
	if !pattern.MatchString(filepath.Base(path)) {
		t.Errorf("filename %q does not match %s", filepath.Base(path), pattern)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(written) != "converted mp3 bytes" {
		t.Errorf("unexpected converted content: %q", written)
	}
}

func TestSave_TranscodeFailure(t *testing.T) {
	tc := &fakeTranscoder{err: errors.New("not audio")}
	s := newTestStore(t, tc)

	path, err := s.Save(context.Background(), []byte("garbage"), audio.FormatUnknown)
	if err == nil {
		t.Fatalf("expected error, got path %s", path)
	}

	var perr *PersistError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PersistError, got %T", err)
	}
	if perr.Op != "transcode" {
		t.Errorf("expected transcode op, got %q", perr.Op)
	}
	if path != "" {
		t.Errorf("expected empty path, got %s", path)
	}
	if names := listDir(t, s.Dir()); len(names) != 0 {
		t.Errorf("expected no files written, got %v", names)
	}
}

func TestSave_WriteFailure(t *testing.T) {
	s := newTestStore(t, &fakeTranscoder{output: []byte("x")})

	// Pull the directory out from under the store
	if err := os.RemoveAll(s.Dir()); err != nil {
		t.Fatalf("failed to remove dir: %v", err)
	}

	for _, f := range []audio.Format{audio.FormatWAV, audio.FormatUnknown} {
		_, err := s.Save(context.Background(), []byte("RIFF"), f)

		var perr *PersistError
		if !errors.As(err, &perr) {
			t.Fatalf("%s: expected *PersistError, got %v", f, err)
		}
		if perr.Op != "write" || perr.Path == "" {
			t.Errorf("%s: expected write op with path, got %+v", f, perr)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s: expected wrapped ErrNotExist, got %v", f, err)
		}
	}
}

func TestSave_ConcurrentNamesDoNotCollide(t *testing.T) {
	s := newTestStore(t, nil)

	const n = 32
	paths := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = s.Save(context.Background(), []byte("ID3"), audio.FormatMP3)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("save %d failed: %v", i, errs[i])
		}
		if seen[paths[i]] {
			t.Fatalf("duplicate path %s", paths[i])
		}
		seen[paths[i]] = true
	}
	if names := listDir(t, s.Dir()); len(names) != n {
		t.Errorf("expected %d files, got %d", n, len(names))
	}
}

func TestPersistError(t *testing.T) {
	inner := errors.New("disk full")

	err := &PersistError{Op: "write", Path: "/tmp/x.mp3", Err: inner}
	if err.Error() != "audio write /tmp/x.mp3 failed: disk full" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected PersistError to unwrap to inner error")
	}

	err = &PersistError{Op: "transcode", Err: inner}
	if err.Error() != "audio transcode failed: disk full" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
