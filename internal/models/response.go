package models

// EmbeddingItem is one element of the response envelope.
type EmbeddingItem struct {
	Embedding Vector `json:"embedding"`
}

// EmbedResponse is the success body of POST /embed.
type EmbedResponse struct {
	Data []EmbeddingItem `json:"data"`
}

// NewEmbedResponse wraps a single vector in the envelope.
func NewEmbedResponse(v Vector) EmbedResponse {
	return EmbedResponse{Data: []EmbeddingItem{{Embedding: v}}}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions"`
}
