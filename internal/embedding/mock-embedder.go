package embedding

import (
	"context"
	"math"

	"github.com/hyperjump/embedserve/pkg/utils"
)

// MockEncoder is a deterministic encoder for tests and local development. It returns a
// fixed-dimension vector derived from the text hash so the same text always gets the same embedding.
type MockEncoder struct {
	dimensions int
}

// NewMockEncoder returns an encoder that produces deterministic embeddings of the given dimensions.
func NewMockEncoder(dimensions int) *MockEncoder {
	if dimensions <= 0 {
		dimensions = 768
	}
	return &MockEncoder{dimensions: dimensions}
}

// Encode returns a deterministic unit-length embedding based on the text hash.
func (e *MockEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h := HashString(text)
	emb := make([]float32, e.dimensions)
	for i := 0; i < e.dimensions; i++ {
		emb[i] = float32(math.Sin(float64(h*(i+1)))*0.1 + 0.01)
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEncoder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEncoder.
func (e *MockEncoder) Close() error {
	return nil
}
