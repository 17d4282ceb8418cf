// ABOUTME: MP3 audio encoder
// ABOUTME: Encodes PCM to MP3 by piping 16-bit samples through ffmpeg
package encode

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
	"github.com/voiceturn/voiceturn-go/pkg/audio/decode"
)

// DefaultMP3Bitrate is used when MP3.Bitrate is empty
const DefaultMP3Bitrate = "128k"

// MP3 encodes with ffmpeg's mp3 muxer
type MP3 struct {
	Binary  string
	Bitrate string
}

// Encode converts a buffer to MP3 bytes
func (e MP3) Encode(ctx context.Context, buf *audio.Buffer) ([]byte, error) {
	if len(buf.Samples) == 0 {
		return nil, fmt.Errorf("cannot encode empty audio buffer")
	}

	bin, err := decode.LookFFmpeg(e.Binary)
	if err != nil {
		return nil, err
	}

	pcm, err := PCM{BitDepth: 16}.Encode(ctx, buf)
	if err != nil {
		return nil, err
	}

	bitrate := e.Bitrate
	if bitrate == "" {
		bitrate = DefaultMP3Bitrate
	}

	// Raw input has no header, so the layout is given explicitly
	cmd := exec.CommandContext(ctx, bin,
		"-loglevel", "error",
		"-f", "s16le",
		"-ar", strconv.Itoa(buf.SampleRate),
		"-ac", strconv.Itoa(buf.Channels),
		"-i", "pipe:0",
		"-f", "mp3",
		"-b:a", bitrate,
		"pipe:1")

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(pcm)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg mp3 encode failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg mp3 encode produced no output")
	}

	return stdout.Bytes(), nil
}
