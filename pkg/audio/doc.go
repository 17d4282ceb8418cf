// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer types and sample conversion functions
// Package audio provides the types shared by the voiceturn audio packages.
//
//   - Format: the container tag of an audio clip (mp3, wav, ogg, flac, m4a)
//   - Buffer: decoded PCM audio, interleaved, in 24-bit range
//
// Sample helpers convert between 16-bit, 24-bit and packed representations.
//
// Example:
//
//	f := sniff.Detect(data)
//	if f.Known() {
//	    name := "clip." + f.Extension()
//	}
package audio
