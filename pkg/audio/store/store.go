// ABOUTME: Audio clip persister with transcoding fallback
// ABOUTME: Writes clips under unique names and wraps failures in PersistError
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

const (
	// DefaultPrefix names clips saved verbatim
	DefaultPrefix = "response_audio"

	// DefaultConvertedPrefix names clips produced by the transcoder
	DefaultConvertedPrefix = "response_audio_converted"

	// ConvertedFormat is the fixed output format of the transcoder
	ConvertedFormat = audio.FormatMP3
)

// PersistError reports a clip that could not be written or converted
type PersistError struct {
	Op   string // "write" or "transcode"
	Path string // empty for transcode failures
	Err  error
}

func (e *PersistError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("audio %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("audio %s %s failed: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Config holds store configuration
type Config struct {
	// Dir is created if missing
	Dir string

	// Prefix for verbatim clips (default: response_audio)
	Prefix string

	// ConvertedPrefix for transcoded clips (default: response_audio_converted)
	ConvertedPrefix string

	// Transcoder converts unrecognized clips (default: FFmpegTranscoder)
	Transcoder Transcoder
}

// Store saves audio clips to a directory
type Store struct {
	config Config
}

// New creates the output directory and returns a store writing into it
func New(config Config) (*Store, error) {
	if config.Dir == "" {
		return nil, errors.New("output directory is required")
	}
	if config.Prefix == "" {
		config.Prefix = DefaultPrefix
	}
	if config.ConvertedPrefix == "" {
		config.ConvertedPrefix = DefaultConvertedPrefix
	}
	if config.Transcoder == nil {
		config.Transcoder = FFmpegTranscoder{}
	}

	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	log.Printf("Output directory set to: %s", config.Dir)

	return &Store{config: config}, nil
}

// Dir returns the output directory
func (s *Store) Dir() string {
	return s.config.Dir
}

// Save writes data as a clip of format f and returns its path.
// Unknown formats are transcoded to mp3 first; any failure is a *PersistError
// and leaves no file behind.
func (s *Store) Save(ctx context.Context, data []byte, f audio.Format) (string, error) {
	if f.Known() {
		path := filepath.Join(s.config.Dir, Filename(s.config.Prefix, f))
		if err := writeFile(path, data); err != nil {
			return "", &PersistError{Op: "write", Path: path, Err: err}
		}
		log.Printf("Audio saved as %s", path)
		return path, nil
	}

	log.Printf("Unknown audio format, converting to %s", ConvertedFormat)
	converted, err := s.config.Transcoder.Transcode(ctx, data)
	if err != nil {
		return "", &PersistError{Op: "transcode", Err: err}
	}

	path := filepath.Join(s.config.Dir, Filename(s.config.ConvertedPrefix, ConvertedFormat))
	if err := writeFile(path, converted); err != nil {
		return "", &PersistError{Op: "write", Path: path, Err: err}
	}
	log.Printf("Audio converted and saved as %s", path)
	return path, nil
}

// Filename returns "{prefix}_{random hex}.{ext}"
func Filename(prefix string, f audio.Format) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_%s.%s", prefix, id, f.Extension())
}

// writeFile creates path exclusively and removes it again on a failed write
func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
