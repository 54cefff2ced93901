package analogy

import (
	"context"

	"github.com/viterin/vek/vek32"

	"github.com/semshift/semshift/internal"
	"github.com/semshift/semshift/pkg/models"
	"github.com/semshift/semshift/pkg/search"
)

// EmbeddedPair is a valid seed pair with its request-scoped embeddings.
type EmbeddedPair struct {
	From       string
	To         string
	FromVector []float32
	ToVector   []float32
}

// Translation is the result of applying the averaged seed-pair shift to
// the target word.
type Translation struct {
	// Translated is the query vector: normalize(target + avgDelta) when
	// the matrix is unit-normalized, the raw sum otherwise. The query's
	// normalization convention must match the matrix's or cosine
	// comparisons are invalid.
	Translated   []float32
	RawSum       []float32
	Deltas       [][]float32
	TargetVector []float32
	Pairs        []EmbeddedPair
	// SkippedPairs counts malformed pair entries that were dropped.
	SkippedPairs int
}

// Engine computes translation vectors from seed pairs. Words do not need
// to exist in the vocabulary; they are embedded per request.
type Engine struct {
	client models.EmbeddingsClient
}

func NewEngine(client models.EmbeddingsClient) *Engine {
	return &Engine{client: client}
}

// Translate embeds all seed words and the target in one batched call
// (interleaved from, to, ..., target), averages the per-pair to-from
// difference vectors, and shifts the target by the average. Invalid pairs
// are skipped, not rejected; zero valid pairs degrade to a zero shift and
// the target comes back unchanged.
func (e *Engine) Translate(
	ctx context.Context,
	pairs []models.SeedPair,
	target string,
	template string,
	matrix *models.EmbeddingMatrix,
) (*Translation, error) {
	valid := make([]models.SeedPair, 0, len(pairs))
	for _, p := range pairs {
		if p.Valid {
			valid = append(valid, p)
		}
	}
	skipped := len(pairs) - len(valid)

	texts := make([]string, 0, 2*len(valid)+1)
	for _, p := range valid {
		texts = append(texts, internal.ApplyTemplate(template, p.From))
		texts = append(texts, internal.ApplyTemplate(template, p.To))
	}
	texts = append(texts, internal.ApplyTemplate(template, target))

	out, err := e.client.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}

	dim := matrix.Dim
	if dim == 0 {
		if dim, err = out.ProbeDim(len(texts)); err != nil {
			return nil, err
		}
	}
	rows, err := out.Rows(len(texts), dim)
	if err != nil {
		return nil, err
	}

	embedded := make([]EmbeddedPair, len(valid))
	deltas := make([][]float32, len(valid))
	for i, p := range valid {
		from := rows[2*i]
		to := rows[2*i+1]
		embedded[i] = EmbeddedPair{From: p.From, To: p.To, FromVector: from, ToVector: to}
		deltas[i] = vek32.Sub(to, from)
	}
	targetVector := rows[len(rows)-1]

	avgDelta := make([]float32, dim)
	if len(deltas) > 0 {
		for _, d := range deltas {
			vek32.Add_Inplace(avgDelta, d)
		}
		vek32.DivNumber_Inplace(avgDelta, float32(len(deltas)))
	}

	rawSum := vek32.Add(targetVector, avgDelta)
	translated := append([]float32(nil), rawSum...)
	if matrix.Normalized {
		search.Normalize(translated)
	}

	return &Translation{
		Translated:   translated,
		RawSum:       rawSum,
		Deltas:       deltas,
		TargetVector: targetVector,
		Pairs:        embedded,
		SkippedPairs: skipped,
	}, nil
}
