// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import "context"

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write plays samples and blocks until they have been rendered or ctx is done
	Write(ctx context.Context, samples []int32) error

	// Close releases output resources
	Close() error
}
