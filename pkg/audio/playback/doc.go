// ABOUTME: Playback of saved audio clips
// ABOUTME: Sniffs, decodes, resamples and renders a file on an output device
// Package playback plays a clip that is already on disk.
//
// Failures are advisory: the file stays where it is whatever happens here.
//
// Example:
//
//	p := playback.New(playback.Config{})
//	defer p.Close()
//	if err := p.Play(ctx, path); err != nil {
//	    log.Printf("Failed to play audio file: %v", err)
//	}
package playback
