package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// OpenAIEncoder delegates to an OpenAI-compatible embeddings endpoint.
type OpenAIEncoder struct {
	client     *openai.Client
	model      string
	dimensions int
}

// NewOpenAIEncoder creates a client for baseURL (empty means api.openai.com).
// Requests are never retried.
func NewOpenAIEncoder(baseURL, apiKey, model string, dimensions int) *OpenAIEncoder {
	opts := []option.RequestOption{
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIEncoder{client: &client, model: model, dimensions: dimensions}
}

// Encode requests one embedding and checks its length.
func (o *OpenAIEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	params := openai.EmbeddingNewParams{
		Model: o.model,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
	}
	if o.dimensions > 0 {
		params.Dimensions = param.NewOpt(int64(o.dimensions))
	}

	resp, err := o.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding: empty response data")
	}

	emb := resp.Data[0].Embedding
	if o.dimensions > 0 && len(emb) != o.dimensions {
		return nil, fmt.Errorf("openai embedding: got %d dimensions, expected %d", len(emb), o.dimensions)
	}
	vec := make([]float32, len(emb))
	for i, v := range emb {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Dimensions returns the configured embedding dimension.
func (o *OpenAIEncoder) Dimensions() int {
	return o.dimensions
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (o *OpenAIEncoder) Close() error {
	return nil
}
