package embedding

import (
	"fmt"

	"github.com/hyperjump/embedserve/internal/config"
)

// New builds the encoder selected by cfg.Backend. For the onnx backend the
// vocabulary and model are loaded here, once.
func New(cfg config.EmbeddingConfig) (Encoder, error) {
	switch cfg.Backend {
	case config.BackendONNX:
		return newONNXFromConfig(cfg)
	case config.BackendOpenAI:
		return NewOpenAIEncoder(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Dimensions), nil
	case config.BackendMock:
		return NewMockEncoder(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Backend)
	}
}

func newONNXFromConfig(cfg config.EmbeddingConfig) (Encoder, error) {
	oc := cfg.ONNX
	pooling, err := ParsePooling(oc.Pooling)
	if err != nil {
		return nil, err
	}
	tokenizer, err := LoadWordPieceTokenizer(oc.VocabPath, SpecialTokens{
		CLS: oc.CLSToken,
		SEP: oc.SEPToken,
		Unk: oc.UnkToken,
	}, oc.LowercaseOrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}
	enc, err := NewONNXEncoder(ONNXOptions{
		LibraryPath:    oc.LibraryPath,
		ModelPath:      oc.ModelPath,
		InputNames:     oc.InputNames,
		OutputName:     oc.OutputName,
		Dimensions:     cfg.Dimensions,
		MaxTokens:      oc.MaxTokens,
		IntraOpThreads: oc.IntraOpThreads,
		Pooling:        pooling,
		Normalize:      oc.Normalize,
	}, tokenizer)
	if err != nil {
		return nil, err
	}
	return enc, nil
}
