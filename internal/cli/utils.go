// Package cli provides output formatting and an HTTP client for the embedserve CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/embedserve/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputJSON is the same envelope the HTTP API returns (default).
	OutputJSON OutputFormat = "json"
	// OutputText is a short human-readable summary.
	OutputText OutputFormat = "text"
)

// ParseOutputFormat validates an --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputJSON, OutputText:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q; use json or text", s)
}

// WriteEmbedding writes an embed response to w in the given format.
func WriteEmbedding(w io.Writer, response models.EmbedResponse, format OutputFormat) error {
	if format == OutputText {
		for _, item := range response.Data {
			fmt.Fprintf(w, "dimensions: %d\n", item.Embedding.Len())
			fmt.Fprintf(w, "preview:    %s\n", previewVector(item.Embedding, 8))
		}
		return nil
	}
	return json.NewEncoder(w).Encode(response)
}

// WriteHealth writes a health response to w in the given format.
func WriteHealth(w io.Writer, health models.HealthResponse, format OutputFormat) error {
	if format == OutputText {
		fmt.Fprintf(w, "status:     %s\n", health.Status)
		fmt.Fprintf(w, "model:      %s\n", health.Model)
		fmt.Fprintf(w, "dimensions: %d\n", health.Dimensions)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(health)
}

// JoinArgs joins positional args with spaces so multi-word input works the same
// with or without shell quoting.
func JoinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func previewVector(v models.Vector, n int) string {
	if len(v) == 0 {
		return "[]"
	}
	parts := make([]string, 0, n+1)
	for i, x := range v {
		if i == n {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, fmt.Sprintf("%.4f", x))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
