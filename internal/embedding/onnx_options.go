package embedding

import (
	"errors"
	"fmt"
)

// ONNXOptions configures an ONNXEncoder.
type ONNXOptions struct {
	LibraryPath    string
	ModelPath      string
	InputNames     []string
	OutputName     string
	Dimensions     int
	MaxTokens      int
	IntraOpThreads int
	Pooling        Pooling
	Normalize      bool
}

// Model inputs the encoder knows how to fill from an Encoding.
const (
	InputIDs           = "input_ids"
	InputAttentionMask = "attention_mask"
	InputTokenTypeIDs  = "token_type_ids"
)

func (o ONNXOptions) validate() error {
	if o.ModelPath == "" {
		return errors.New("onnx model path is required")
	}
	if o.OutputName == "" {
		return errors.New("onnx output name is required")
	}
	if o.Dimensions <= 0 {
		return fmt.Errorf("invalid dimensions %d", o.Dimensions)
	}
	if len(o.InputNames) == 0 {
		return errors.New("at least one onnx input name is required")
	}
	for _, name := range o.InputNames {
		switch name {
		case InputIDs, InputAttentionMask, InputTokenTypeIDs:
		default:
			return fmt.Errorf("unsupported onnx input %q", name)
		}
	}
	if _, err := ParsePooling(string(o.Pooling)); err != nil {
		return err
	}
	return nil
}

func inputData(enc Encoding, name string) []int64 {
	switch name {
	case InputAttentionMask:
		return enc.AttentionMask
	case InputTokenTypeIDs:
		return enc.TypeIDs
	default:
		return enc.IDs
	}
}
