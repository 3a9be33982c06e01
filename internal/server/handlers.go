package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/hyperjump/embedserve/internal/models"
	"github.com/hyperjump/embedserve/pkg/utils"
	"go.uber.org/zap"
)

// Plain-text bodies of the error responses. Clients match on these strings.
const (
	msgInvalidBody  = "Invalid or missing JSON body."
	msgMissingInput = "Error: 'input' field missing or empty in JSON body."
	msgEncodeFailed = "Error generating embedding: "
)

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.logger.Info("embed endpoint called", zap.String("request_id", RequestIDFromContext(ctx)))

	var body io.Reader = r.Body
	if s.config.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		s.logger.Debug("read body failed", zap.Error(err))
		s.respondText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req, err := models.DecodeEmbedRequest(data)
	if err != nil {
		s.logger.Debug("decode body failed", zap.Error(err))
		s.respondText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	text, err := req.Text()
	if err != nil {
		s.respondText(w, http.StatusBadRequest, msgMissingInput)
		return
	}
	s.logger.Debug("embed request", zap.String("input", utils.Truncate(text, 80)), zap.Int("input_length", len(text)))

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Error("embedding failed", zap.Error(err))
		s.respondText(w, http.StatusInternalServerError, msgEncodeFailed+err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.NewEmbedResponse(vec))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:     "ok",
		Model:      s.embedder.ModelID(),
		Dimensions: s.embedder.Dimensions(),
	})
}

// respondJSON marshals before writing the status so a marshal failure can still become a 500.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("marshal response failed", zap.Error(err))
		s.respondText(w, http.StatusInternalServerError, msgEncodeFailed+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func (s *Server) respondText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, message)
}
