package models

import "context"

type EmbeddingModel struct {
	Name         string `json:"name"`
	Dimensions   int    `json:"dimensions"`
	IsNormalized bool   `json:"normalized"`
}

// EmbeddingsClient is implemented by embedding providers. One vector is
// returned per input text, all of equal dimension, in input order.
type EmbeddingsClient interface {
	EmbedTexts(ctx context.Context, texts []string) (*BatchOutput, error)
}

// BatchOutput is the raw result of a batched embed call. Providers return
// either one vector per item or a single concatenated buffer; exactly one
// of PerItem and Flat is set.
type BatchOutput struct {
	PerItem [][]float32
	Flat    []float32
}

func NewPerItemBatch(vectors [][]float32) *BatchOutput {
	return &BatchOutput{PerItem: vectors}
}

func NewFlatBatch(buf []float32) *BatchOutput {
	return &BatchOutput{Flat: buf}
}

// ProbeDim derives the embedding dimension from a batch known to hold n
// items. Used to size the matrix buffer before a full build.
func (b *BatchOutput) ProbeDim(n int) (int, error) {
	if n <= 0 {
		return 0, NewProviderError("cannot probe dimension of an empty batch", nil)
	}
	if b.PerItem != nil {
		if len(b.PerItem) != n {
			return 0, NewProviderError("provider returned wrong vector count", nil)
		}
		return len(b.PerItem[0]), nil
	}
	if len(b.Flat)%n != 0 {
		return 0, NewProviderError("concatenated buffer length is not a multiple of the batch size", nil)
	}
	return len(b.Flat) / n, nil
}

// Rows decodes the batch into n rows of dim floats, validating shape.
// The concatenated variant derives its row count from len/dim.
func (b *BatchOutput) Rows(n, dim int) ([][]float32, error) {
	if b.PerItem != nil {
		if len(b.PerItem) != n {
			return nil, NewProviderError("provider returned wrong vector count", nil)
		}
		for _, v := range b.PerItem {
			if len(v) != dim {
				return nil, NewProviderError("provider returned vectors of unequal dimension", nil)
			}
		}
		return b.PerItem, nil
	}
	if len(b.Flat) != n*dim {
		return nil, NewProviderError("concatenated buffer length does not match batch size and dimension", nil)
	}
	rows := make([][]float32, n)
	for i := 0; i < n; i++ {
		rows[i] = b.Flat[i*dim : (i+1)*dim]
	}
	return rows, nil
}
