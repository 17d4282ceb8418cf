// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded clips to the playback device rate
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation; good enough for speech played through a
// device that was opened at a fixed rate.
//
// Example:
//
//	out := resample.Buffer(buf, 48000)
package resample
