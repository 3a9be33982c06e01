package config

// Backend names accepted in embedding.backend.
const (
	BackendONNX   = "onnx"
	BackendOpenAI = "openai"
	BackendMock   = "mock"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}

	if cfg.Embedding.Backend == "" {
		cfg.Embedding.Backend = BackendONNX
	}
	if cfg.Embedding.ModelID == "" {
		cfg.Embedding.ModelID = "sentence-transformers/multi-qa-mpnet-base-dot-v1"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 768
	}

	onnx := &cfg.Embedding.ONNX
	if onnx.ModelPath == "" {
		onnx.ModelPath = "/usr/local/var/embedserve/models/multi-qa-mpnet-base-dot-v1/model.onnx"
	}
	if onnx.VocabPath == "" {
		onnx.VocabPath = "/usr/local/var/embedserve/models/multi-qa-mpnet-base-dot-v1/vocab.txt"
	}
	if onnx.MaxTokens == 0 {
		onnx.MaxTokens = 512
	}
	if onnx.InputNames == nil {
		onnx.InputNames = []string{"input_ids", "attention_mask"}
	}
	if onnx.OutputName == "" {
		onnx.OutputName = "last_hidden_state"
	}
	if onnx.Pooling == "" {
		onnx.Pooling = "cls"
	}
	// MPNet vocabularies carry RoBERTa-style specials alongside the BERT unknown token.
	if onnx.CLSToken == "" {
		onnx.CLSToken = "<s>"
	}
	if onnx.SEPToken == "" {
		onnx.SEPToken = "</s>"
	}
	if onnx.UnkToken == "" {
		onnx.UnkToken = "[UNK]"
	}

	if cfg.Embedding.OpenAI.Model == "" {
		cfg.Embedding.OpenAI.Model = "text-embedding-3-small"
	}

	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "embedserve"
	}
	if cfg.Tracing.URLPath == "" {
		cfg.Tracing.URLPath = "/v1/traces"
	}
}
