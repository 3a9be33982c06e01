package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func fakeOpenAI(t *testing.T, status int, embedding []float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/embeddings") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Model != "test-model" || len(body.Input) != 1 {
			t.Errorf("unexpected request body: %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"model":  "test-model",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": embedding},
			},
			"usage": map[string]int{"prompt_tokens": 2, "total_tokens": 2},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIEncoder_Encode(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, []float64{0.25, -0.5, 1})
	e := NewOpenAIEncoder(srv.URL+"/v1/", "sk-test", "test-model", 3)
	defer e.Close()

	got, err := e.Encode(context.Background(), "hello world")
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0.25, -0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if e.Dimensions() != 3 {
		t.Errorf("Dimensions() = %d", e.Dimensions())
	}
}

func TestOpenAIEncoder_dimensionMismatch(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, []float64{0.25, -0.5})
	e := NewOpenAIEncoder(srv.URL+"/v1/", "sk-test", "test-model", 3)
	if _, err := e.Encode(context.Background(), "hello"); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestOpenAIEncoder_serverError(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusInternalServerError, nil)
	e := NewOpenAIEncoder(srv.URL+"/v1/", "sk-test", "test-model", 3)
	_, err := e.Encode(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "openai embedding") {
		t.Errorf("error should be wrapped, got %v", err)
	}
}
