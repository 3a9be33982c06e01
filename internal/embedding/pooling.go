package embedding

import "fmt"

// Pooling reduces per-token hidden states to one sentence vector.
type Pooling string

const (
	// PoolingCLS takes the hidden state of the first token.
	PoolingCLS Pooling = "cls"
	// PoolingMean averages hidden states over tokens with attention mask 1.
	PoolingMean Pooling = "mean"
	// PoolingNone expects the model to output a pooled [1, dims] tensor.
	PoolingNone Pooling = "none"
)

// ParsePooling validates a pooling name from config.
func ParsePooling(s string) (Pooling, error) {
	switch p := Pooling(s); p {
	case PoolingCLS, PoolingMean, PoolingNone:
		return p, nil
	}
	return "", fmt.Errorf("unknown pooling %q (want cls, mean or none)", s)
}

// Pool reduces a flattened model output to a vector of dims values.
// For cls and mean, hidden must hold seqLen*dims values laid out token-major.
func Pool(mode Pooling, hidden []float32, seqLen, dims int, mask []int64) ([]float32, error) {
	switch mode {
	case PoolingNone:
		if len(hidden) != dims {
			return nil, fmt.Errorf("model output has %d values, expected %d", len(hidden), dims)
		}
		out := make([]float32, dims)
		copy(out, hidden)
		return out, nil
	case PoolingCLS, PoolingMean:
		if seqLen <= 0 || len(hidden) != seqLen*dims {
			return nil, fmt.Errorf("model output has %d values, expected %d tokens x %d dims", len(hidden), seqLen, dims)
		}
	default:
		return nil, fmt.Errorf("unknown pooling %q", mode)
	}

	out := make([]float32, dims)
	if mode == PoolingCLS {
		copy(out, hidden[:dims])
		return out, nil
	}

	if len(mask) != seqLen {
		return nil, fmt.Errorf("attention mask has %d entries, expected %d", len(mask), seqLen)
	}
	var count float32
	for tok := 0; tok < seqLen; tok++ {
		if mask[tok] == 0 {
			continue
		}
		row := hidden[tok*dims : (tok+1)*dims]
		for i, v := range row {
			out[i] += v
		}
		count++
	}
	if count == 0 {
		return out, nil
	}
	for i := range out {
		out[i] /= count
	}
	return out, nil
}
