// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface and oto implementation
// Package output provides audio playback devices.
//
// The oto backend opens the system device once per process; later Open
// calls must use the same layout.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(48000, 2)
//	err = out.Write(ctx, samples)
package output
