package embedding

import (
	"reflect"
	"testing"
)

func TestParsePooling(t *testing.T) {
	for _, s := range []string{"cls", "mean", "none"} {
		if _, err := ParsePooling(s); err != nil {
			t.Errorf("ParsePooling(%q): %v", s, err)
		}
	}
	if _, err := ParsePooling("max"); err == nil {
		t.Error("expected error for unknown pooling")
	}
}

func TestPool(t *testing.T) {
	// 3 tokens x 2 dims
	hidden := []float32{
		1, 2,
		3, 4,
		5, 9,
	}
	tests := []struct {
		name   string
		mode   Pooling
		hidden []float32
		seqLen int
		mask   []int64
		want   []float32
	}{
		{"cls takes first token", PoolingCLS, hidden, 3, []int64{1, 1, 1}, []float32{1, 2}},
		{"mean over all tokens", PoolingMean, hidden, 3, []int64{1, 1, 1}, []float32{3, 5}},
		{"mean skips masked tokens", PoolingMean, hidden, 3, []int64{1, 1, 0}, []float32{2, 3}},
		{"mean with empty mask", PoolingMean, hidden, 3, []int64{0, 0, 0}, []float32{0, 0}},
		{"none copies pooled output", PoolingNone, []float32{7, 8}, 3, nil, []float32{7, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pool(tt.mode, tt.hidden, tt.seqLen, 2, tt.mask)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Pool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPool_shapeMismatch(t *testing.T) {
	if _, err := Pool(PoolingCLS, []float32{1, 2, 3}, 2, 2, nil); err == nil {
		t.Error("cls: expected error for wrong output size")
	}
	if _, err := Pool(PoolingNone, []float32{1, 2, 3}, 1, 2, nil); err == nil {
		t.Error("none: expected error for wrong output size")
	}
	if _, err := Pool(PoolingMean, []float32{1, 2, 3, 4}, 2, 2, []int64{1}); err == nil {
		t.Error("mean: expected error for short mask")
	}
	if _, err := Pool(Pooling("max"), []float32{1, 2}, 1, 2, nil); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestPool_doesNotAliasOutput(t *testing.T) {
	hidden := []float32{1, 2, 3, 4}
	got, err := Pool(PoolingCLS, hidden, 2, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	hidden[0] = 100
	if got[0] != 1 {
		t.Error("pooled vector must not share memory with the output tensor")
	}
}
