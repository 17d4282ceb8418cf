// ABOUTME: Audio payload pipeline from base64 field to saved file
// ABOUTME: Decode, sniff, save or convert, then optionally play
// Package pipeline processes the audio field of one response.
//
// Steps run sequentially: payload.Decode, sniff.Detect, Store.Save and an
// optional Player.Play. Callers can tell the failure classes apart:
//
//   - payload.ErrMalformed or ErrEmptyAudio: no usable audio in the response
//   - *store.PersistError: audio present but it could not be written or converted
//   - Result.PlaybackErr: the file exists, playback alone failed
package pipeline
