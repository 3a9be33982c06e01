package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/embedserve/internal/config"
	"github.com/hyperjump/embedserve/internal/embedding"
	"github.com/hyperjump/embedserve/internal/models"
	"github.com/hyperjump/embedserve/internal/server"
	"github.com/hyperjump/embedserve/internal/service"
	"go.uber.org/zap"
)

func TestParseOutputFormat(t *testing.T) {
	if f, err := ParseOutputFormat("json"); err != nil || f != OutputJSON {
		t.Errorf("json: %v %v", f, err)
	}
	if f, err := ParseOutputFormat("text"); err != nil || f != OutputText {
		t.Errorf("text: %v %v", f, err)
	}
	if _, err := ParseOutputFormat("yaml"); err == nil {
		t.Error("expected error for yaml")
	}
}

func TestWriteEmbedding_JSON(t *testing.T) {
	var buf bytes.Buffer
	resp := models.NewEmbedResponse(models.Vector{0.5, -0.25})
	if err := WriteEmbedding(&buf, resp, OutputJSON); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"data":[{"embedding":[0.5,-0.25]}]}` {
		t.Errorf("got %s", got)
	}
}

func TestWriteEmbedding_Text(t *testing.T) {
	var buf bytes.Buffer
	v := make(models.Vector, 10)
	v[0] = 0.125
	if err := WriteEmbedding(&buf, models.NewEmbedResponse(v), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "dimensions: 10") {
		t.Errorf("missing dimensions line: %s", out)
	}
	if !strings.Contains(out, "[0.1250 0.0000") || !strings.Contains(out, "...]") {
		t.Errorf("unexpected preview: %s", out)
	}
}

func TestWriteHealth(t *testing.T) {
	h := models.HealthResponse{Status: "ok", Model: "m", Dimensions: 3}
	var buf bytes.Buffer
	if err := WriteHealth(&buf, h, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.HealthResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded != h {
		t.Errorf("decoded %+v, want %+v", decoded, h)
	}

	buf.Reset()
	if err := WriteHealth(&buf, h, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "model:      m") {
		t.Errorf("unexpected text output: %s", buf.String())
	}
}

func TestJoinArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"hello"}, "hello"},
		{[]string{"hello", "world"}, "hello world"},
		{[]string{"hello world"}, "hello world"},
		{[]string{}, ""},
		{[]string{"  ", " "}, ""},
	}
	for _, tt := range tests {
		if got := JoinArgs(tt.args); got != tt.want {
			t.Errorf("JoinArgs(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.New(embedding.NewMockEncoder(12), "mock", zap.NewNop())
	h := server.NewServer(svc, &config.ServerConfig{MaxBodyBytes: 1 << 20}, zap.NewNop()).Handler()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Embed(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL+"/", 5*time.Second)
	resp, err := c.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Embedding.Len() != 12 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestClient_EmbedEmptyInput(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Embed(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "'input' field missing") {
		t.Errorf("error should carry status and body, got %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	srv := newBackend(t)
	h, err := NewClient(srv.URL, 5*time.Second).Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if h.Model != "mock" || h.Dimensions != 12 {
		t.Errorf("unexpected health: %+v", h)
	}
}
