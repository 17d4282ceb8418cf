// ABOUTME: Base64 audio payload decoder
// ABOUTME: Normalizes padding and rejects malformed input
package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned for input that is not valid base64 once padded
var ErrMalformed = errors.New("malformed base64 audio payload")

// Pad appends the '=' characters needed to bring s to a multiple of 4.
// A remainder of 1 gets three characters; that length can never decode.
func Pad(s string) string {
	padding := 4 - len(s)%4
	if padding == 4 {
		return s
	}
	return s + strings.Repeat("=", padding)
}

// Decode pads s and decodes it with the standard alphabet.
// The result is nil whenever err is non-nil.
func Decode(s string) ([]byte, error) {
	// StdEncoding silently drops CR and LF; the payload must not carry them
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return nil, fmt.Errorf("%w: line break at offset %d", ErrMalformed, i)
	}

	data, err := base64.StdEncoding.DecodeString(Pad(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return data, nil
}
