// ABOUTME: Base64 framing for audio payloads embedded in API responses
// ABOUTME: Restores missing padding and decodes strictly
// Package payload turns the base64 audio field of an API response into raw bytes.
//
// Endpoints frequently drop the trailing '=' padding. Decode restores it
// before decoding and rejects anything that is not strict standard base64.
//
// Example:
//
//	data, err := payload.Decode(resp.Audio)
//	if errors.Is(err, payload.ErrMalformed) {
//	    // no usable audio in this response
//	}
package payload
