// Package service holds the embedding service: one loaded encoder shared by all requests.
package service

import (
	"context"
	"fmt"

	"github.com/hyperjump/embedserve/internal/embedding"
	"github.com/hyperjump/embedserve/internal/models"
	"github.com/hyperjump/embedserve/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Service is immutable after New and safe for concurrent use.
type Service struct {
	encoder embedding.Encoder
	modelID string
	logger  *zap.Logger
}

// New wraps an already loaded encoder.
func New(encoder embedding.Encoder, modelID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{encoder: encoder, modelID: modelID, logger: logger}
}

// Embed encodes text and returns it as a JSON-safe vector. Encoder errors are
// returned as-is for the caller to report; nothing is retried.
func (s *Service) Embed(ctx context.Context, text string) (models.Vector, error) {
	ctx, span := tracing.Tracer().Start(ctx, "embedding.encode")
	defer span.End()
	span.SetAttributes(
		attribute.String("embedding.model", s.modelID),
		attribute.Int("embedding.input_length", len(text)),
	)

	raw, err := s.encoder.Encode(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	vec, err := models.NewVector(raw)
	if err != nil {
		err = fmt.Errorf("invalid encoder output: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("embedding.dimensions", vec.Len()))
	s.logger.Debug("encoded text", zap.Int("input_length", len(text)), zap.Int("dimensions", vec.Len()))
	return vec, nil
}

// ModelID returns the identifier of the loaded model.
func (s *Service) ModelID() string {
	return s.modelID
}

// Dimensions returns the vector length produced by the loaded model.
func (s *Service) Dimensions() int {
	return s.encoder.Dimensions()
}

// Close releases the encoder. Call once at shutdown.
func (s *Service) Close() error {
	return s.encoder.Close()
}
