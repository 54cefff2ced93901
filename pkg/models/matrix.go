package models

// EmbeddingMatrix is the row-major unit-normalized vocabulary embedding
// matrix. It is owned by the embedding cache and immutable once published;
// every other component treats it as read-only. A rebuild produces a new
// matrix value and swaps the published pointer, never mutates in place.
type EmbeddingMatrix struct {
	Words      []string
	Dim        int
	Normalized bool
	Signature  string
	// Data holds Rows()*Dim float32 values, one row per vocabulary word.
	Data []float32
}

func (m *EmbeddingMatrix) Rows() int {
	return len(m.Words)
}

// Row returns the i-th row as a slice into the underlying buffer.
// Callers must not modify it.
func (m *EmbeddingMatrix) Row(i int) []float32 {
	return m.Data[i*m.Dim : (i+1)*m.Dim]
}
