package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/hyperjump/embedserve/internal/embedding"
	"github.com/hyperjump/embedserve/internal/models"
	"go.uber.org/zap"
)

type stubEncoder struct {
	out []float32
	err error
}

func (s *stubEncoder) Encode(context.Context, string) ([]float32, error) { return s.out, s.err }
func (s *stubEncoder) Dimensions() int                                  { return len(s.out) }
func (s *stubEncoder) Close() error                                     { return nil }

func TestService_Embed(t *testing.T) {
	svc := New(embedding.NewMockEncoder(32), "mock-model", zap.NewNop())
	defer svc.Close()

	vec, err := svc.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatal(err)
	}
	if vec.Len() != 32 || svc.Dimensions() != 32 {
		t.Errorf("len=%d dims=%d", vec.Len(), svc.Dimensions())
	}
	if svc.ModelID() != "mock-model" {
		t.Errorf("ModelID() = %s", svc.ModelID())
	}

	again, err := svc.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(vec, again) {
		t.Error("same input should give the same vector")
	}
}

func TestService_Embed_encoderError(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&stubEncoder{err: boom}, "m", nil)
	if _, err := svc.Embed(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestService_Embed_invalidOutput(t *testing.T) {
	tests := []struct {
		name string
		out  []float32
	}{
		{"empty", nil},
		{"nan", []float32{1, float32(math.NaN())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&stubEncoder{out: tt.out}, "m", nil)
			if _, err := svc.Embed(context.Background(), "x"); err == nil {
				t.Error("expected error")
			}
		})
	}
	svc := New(&stubEncoder{}, "m", nil)
	if _, err := svc.Embed(context.Background(), "x"); !errors.Is(err, models.ErrEmptyVector) {
		t.Errorf("err = %v, want ErrEmptyVector", err)
	}
}

func TestService_Embed_concurrent(t *testing.T) {
	svc := New(embedding.NewMockEncoder(16), "m", nil)
	want, err := svc.Embed(context.Background(), "shared")
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Embed(context.Background(), "shared")
			if err != nil {
				t.Error(err)
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Error("concurrent result differs")
			}
		}()
	}
	wg.Wait()
}
