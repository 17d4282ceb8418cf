// ABOUTME: Audio decoder package for whole-clip decoding
// ABOUTME: Provides Decoder interface and implementations for MP3, FLAC, WAV, Ogg Opus and ffmpeg
// Package decode turns a complete audio clip into PCM.
//
// Supports: MP3 (go-mp3), FLAC (mewkiz/flac), WAV PCM, Ogg Opus (libopus)
// and any other container through the ffmpeg binary.
//
// All decoders return an audio.Buffer with int32 samples in 24-bit range.
//
// Example:
//
//	dec := decode.ForFormat(sniff.Detect(data))
//	buf, err := dec.Decode(ctx, data)
package decode
