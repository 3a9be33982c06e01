// Package embedding provides text encoders backed by ONNX Runtime, an
// OpenAI-compatible endpoint, or a deterministic mock.
package embedding

import "context"

// Encoder turns text into a fixed-length vector. Implementations are safe for
// concurrent use once constructed.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Close() error
}
