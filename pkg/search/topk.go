package search

import (
	"sort"

	"github.com/viterin/vek/vek32"

	"github.com/semshift/semshift/pkg/models"
)

// TopK ranks every matrix row by cosine similarity to query and returns
// up to k results, highest score first, skipping words in exclude.
// On a unit-normalized matrix the score is a plain dot product; the query
// is normalized to match the matrix's convention before scoring.
//
// k <= 0, an empty matrix, or an exclusion set covering the whole
// vocabulary all yield a shorter or empty result, never an error.
// Equal scores keep ascending row order, so rankings are deterministic.
func TopK(
	m *models.EmbeddingMatrix,
	query []float32,
	k int,
	exclude map[string]struct{},
) []models.NeighborResult {
	results := []models.NeighborResult{}
	if m == nil || m.Rows() == 0 || k <= 0 || len(query) != m.Dim {
		return results
	}

	q := query
	if m.Normalized && !IsNormalized(q, 1e-4) {
		q = append([]float32(nil), query...)
		Normalize(q)
	}

	scores := make([]float32, m.Rows())
	order := make([]int, m.Rows())
	for i := range scores {
		scores[i] = vek32.Dot(m.Row(i), q)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	for _, row := range order {
		if _, skip := exclude[m.Words[row]]; skip {
			continue
		}
		results = append(results, models.NeighborResult{
			Word:     m.Words[row],
			Score:    float64(scores[row]),
			RowIndex: row,
		})
		if len(results) == k {
			break
		}
	}
	return results
}
