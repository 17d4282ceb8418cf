// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for all audio encoders
package encode

import (
	"context"

	"github.com/voiceturn/voiceturn-go/pkg/audio"
)

// Encoder encodes a PCM buffer into a byte stream
type Encoder interface {
	Encode(ctx context.Context, buf *audio.Buffer) ([]byte, error)
}
