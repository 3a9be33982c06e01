// Package models defines the request and response shapes of the embedding API.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidBody is returned when the request body is not a JSON object.
	ErrInvalidBody = errors.New("invalid or missing JSON body")
	// ErrMissingInput is returned when "input" is absent or empty.
	ErrMissingInput = errors.New("input field missing or empty")
)

// EmbedRequest is the body of POST /embed. Other fields are ignored.
type EmbedRequest struct {
	Input string `json:"input"`
}

// DecodeEmbedRequest parses a request body. An absent "input" key decodes to the
// empty string; validation happens in Text.
func DecodeEmbedRequest(body []byte) (EmbedRequest, error) {
	var req EmbedRequest
	if len(body) == 0 {
		return req, ErrInvalidBody
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return EmbedRequest{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return req, nil
}

// Text returns the text to embed, or ErrMissingInput when it is empty.
// Whitespace is significant: "  " is a valid input.
func (r EmbedRequest) Text() (string, error) {
	if r.Input == "" {
		return "", ErrMissingInput
	}
	return r.Input, nil
}
