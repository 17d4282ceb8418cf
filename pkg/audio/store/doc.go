// ABOUTME: Persistence of decoded audio clips
// ABOUTME: Saves known formats verbatim and converts unknown clips to mp3
// Package store writes audio clips to an output directory.
//
// Clips with a detected container format are written byte for byte under
// the matching extension. Clips with no recognizable signature go through a
// Transcoder (generic decode, then mp3 encode) and are written with the
// converted prefix. Every file gets a fresh random name, so concurrent saves
// never collide.
//
// Example:
//
//	s, err := store.New(store.Config{Dir: "output"})
//	path, err := s.Save(ctx, data, sniff.Detect(data))
package store
