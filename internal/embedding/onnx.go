//go:build cgo
// +build cgo

package embedding

import (
	"context"
	"fmt"

	"github.com/hyperjump/embedserve/pkg/utils"
	ort "github.com/yalue/onnxruntime_go"
)

// ONNXEncoder runs a sentence-transformer graph through ONNX Runtime. It requires
// CGO and the onnxruntime shared library.
//
// The session is created once and only read afterwards; every Encode call builds
// its own tensors sized to the actual token count, so concurrent calls need no lock.
type ONNXEncoder struct {
	session    *ort.DynamicAdvancedSession
	tokenizer  Tokenizer
	inputNames []string
	dimensions int
	maxTokens  int
	pooling    Pooling
	normalize  bool
}

// NewONNXEncoder initializes the runtime environment if needed and loads the model.
func NewONNXEncoder(opts ONNXOptions, tokenizer Tokenizer) (*ONNXEncoder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if !ort.IsInitialized() {
		if opts.LibraryPath != "" {
			ort.SetSharedLibraryPath(opts.LibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
		}
	}

	var sessionOpts *ort.SessionOptions
	if opts.IntraOpThreads > 0 {
		so, err := ort.NewSessionOptions()
		if err != nil {
			return nil, fmt.Errorf("failed to create session options: %w", err)
		}
		defer so.Destroy()
		if err := so.SetIntraOpNumThreads(opts.IntraOpThreads); err != nil {
			return nil, fmt.Errorf("failed to set intra-op threads: %w", err)
		}
		sessionOpts = so
	}

	session, err := ort.NewDynamicAdvancedSession(
		opts.ModelPath,
		opts.InputNames,
		[]string{opts.OutputName},
		sessionOpts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXEncoder{
		session:    session,
		tokenizer:  tokenizer,
		inputNames: opts.InputNames,
		dimensions: opts.Dimensions,
		maxTokens:  opts.MaxTokens,
		pooling:    opts.Pooling,
		normalize:  opts.Normalize,
	}, nil
}

// Encode tokenizes text, runs the model and pools the output.
func (e *ONNXEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enc := e.tokenizer.Encode(text, e.maxTokens)
	seqLen := int64(enc.Len())
	inputShape := ort.NewShape(1, seqLen)

	inputs := make([]ort.ArbitraryTensor, 0, len(e.inputNames))
	defer func() {
		for _, t := range inputs {
			_ = t.Destroy()
		}
	}()
	for _, name := range e.inputNames {
		t, err := ort.NewTensor(inputShape, inputData(enc, name))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s tensor: %w", name, err)
		}
		inputs = append(inputs, t)
	}

	outputShape := ort.NewShape(1, seqLen, int64(e.dimensions))
	if e.pooling == PoolingNone {
		outputShape = ort.NewShape(1, int64(e.dimensions))
	}
	output, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer output.Destroy()

	if err := e.session.Run(inputs, []ort.ArbitraryTensor{output}); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	embedding, err := Pool(e.pooling, output.GetData(), int(seqLen), e.dimensions, enc.AttentionMask)
	if err != nil {
		return nil, err
	}
	if e.normalize {
		utils.NormalizeL2(embedding)
	}
	return embedding, nil
}

// Dimensions returns the embedding dimension.
func (e *ONNXEncoder) Dimensions() int {
	return e.dimensions
}

// Close destroys the session.
func (e *ONNXEncoder) Close() error {
	if e.session == nil {
		return nil
	}
	err := e.session.Destroy()
	e.session = nil
	return err
}
