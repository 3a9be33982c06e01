//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

var errNoCGO = errors.New("ONNX encoder requires CGO; build with CGO_ENABLED=1 and onnxruntime")

// ONNXEncoder stub type when built without CGO (see onnx.go for real implementation).
type ONNXEncoder struct{}

// NewONNXEncoder returns an error when built without CGO (ONNX not available).
func NewONNXEncoder(opts ONNXOptions, _ Tokenizer) (*ONNXEncoder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return nil, errNoCGO
}

func (e *ONNXEncoder) Encode(context.Context, string) ([]float32, error) { return nil, errNoCGO }

func (e *ONNXEncoder) Dimensions() int { return 0 }

func (e *ONNXEncoder) Close() error { return nil }
