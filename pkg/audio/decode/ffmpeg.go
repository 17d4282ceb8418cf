// ABOUTME: Generic decoder backed by the ffmpeg binary
// ABOUTME: Auto-detects any container ffmpeg understands and outputs PCM
package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

const (
	// DefaultFFmpegRate and DefaultFFmpegChannels fix the PCM layout ffmpeg emits
	DefaultFFmpegRate     = 48000
	DefaultFFmpegChannels = 2
)

// ErrFFmpegUnavailable is returned when the ffmpeg binary cannot be found
var ErrFFmpegUnavailable = errors.New("ffmpeg not found in PATH")

// FFmpeg decodes any clip ffmpeg can probe. Zero fields use the defaults.
type FFmpeg struct {
	Binary     string
	SampleRate int
	Channels   int
}

// FFmpegAvailable reports whether the ffmpeg binary can be found
func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// Decode runs ffmpeg on a temp copy of data and reads back 16-bit PCM
func (d FFmpeg) Decode(ctx context.Context, data []byte) (*audio.Buffer, error) {
	bin, err := LookFFmpeg(d.Binary)
	if err != nil {
		return nil, err
	}

	rate := d.SampleRate
	if rate == 0 {
		rate = DefaultFFmpegRate
	}
	channels := d.Channels
	if channels == 0 {
		channels = DefaultFFmpegChannels
	}

	// MP4 with the moov box at the end needs a seekable input, which stdin
	// is not
	input, err := spool(data)
	if err != nil {
		return nil, err
	}
	defer os.Remove(input)

	// -f s16le: signed 16-bit little-endian PCM on stdout
	cmd := exec.CommandContext(ctx, bin,
		"-loglevel", "error",
		"-i", input,
		"-f", "s16le",
		"-ar", strconv.Itoa(rate),
		"-ac", strconv.Itoa(channels),
		"pipe:1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, ErrNoAudio
	}

	return &audio.Buffer{
		SampleRate: rate,
		Channels:   channels,
		Samples:    samplesFromS16LE(stdout.Bytes()),
	}, nil
}

// spool writes data to a temp file and returns its path
func spool(data []byte) (string, error) {
	f, err := os.CreateTemp("", "voiceturn-decode-*")
	if err != nil {
		return "", fmt.Errorf("failed to create decode input: %w", err)
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("failed to write decode input: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to write decode input: %w", err)
	}
	return name, nil
}

// LookFFmpeg resolves the ffmpeg binary, defaulting to "ffmpeg" on PATH
func LookFFmpeg(bin string) (string, error) {
	if bin == "" {
		bin = "ffmpeg"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFFmpegUnavailable, err)
	}
	return path, nil
}
