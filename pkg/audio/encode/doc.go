// ABOUTME: Audio encoder package for encoding PCM buffers
// ABOUTME: Provides Encoder interface and implementations for PCM, WAV and MP3
// Package encode turns decoded PCM back into bytes.
//
// Supports: raw PCM (16-bit and 24-bit), WAV, and MP3 through the ffmpeg
// binary. MP3 is the normalized output format for converted clips.
//
// Example:
//
//	enc := encode.MP3{}
//	data, err := enc.Encode(ctx, buf)
package encode
