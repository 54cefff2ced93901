package testutils

import (
	"context"
	"hash/fnv"
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/semshift/semshift/pkg/models"
)

var _ models.EmbeddingsClient = &StubEmbeddings{}

// StubEmbeddings is a deterministic embedding provider for tests.
// Fixture texts (keyed by the already-templated string) use their fixture
// vectors; any other text hashes to a stable pseudo-random vector, so the
// same input always embeds identically. Set Flat to return the
// concatenated-buffer output variant instead of per-item vectors.
type StubEmbeddings struct {
	Dim      int
	Fixtures map[string][]float32
	Flat     bool

	// Calls counts EmbedTexts invocations, Embedded the total texts seen.
	Calls    int
	Embedded int
}

func (s *StubEmbeddings) EmbedTexts(
	_ context.Context,
	texts []string,
) (*models.BatchOutput, error) {
	if len(texts) == 0 {
		return nil, models.NewProviderError("no text to embed", nil)
	}
	s.Calls++
	s.Embedded += len(texts)

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = s.vector(text)
	}

	if s.Flat {
		flat := make([]float32, 0, len(texts)*s.Dim)
		for _, v := range vectors {
			flat = append(flat, v...)
		}
		return models.NewFlatBatch(flat), nil
	}
	return models.NewPerItemBatch(vectors), nil
}

func (s *StubEmbeddings) vector(text string) []float32 {
	if v, ok := s.Fixtures[text]; ok {
		return append([]float32(nil), v...)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64()))) //nolint:gosec
	v := make([]float32, s.Dim)
	for i := range v {
		v[i] = float32(rng.NormFloat64())
	}
	return v
}

// AnalogyFixtureVectors returns a 4-dimensional embedding space where
// every "-ing" form sits at the base word plus a consistent offset along
// the fourth axis. All vectors are unit length.
func AnalogyFixtureVectors() map[string][]float32 {
	return map[string][]float32{
		"garden":    {1, 0, 0, 0},
		"gardening": {0.8, 0, 0, 0.6},
		"belief":    {0, 1, 0, 0},
		"believing": {0, 0.8, 0, 0.6},
		"work":      {0, 0, 1, 0},
		"working":   {0, 0, 0.8, 0.6},
	}
}

// AnalogyFixtureWords is the vocabulary matching AnalogyFixtureVectors,
// in matrix row order.
func AnalogyFixtureWords() []string {
	return []string{"garden", "gardening", "belief", "believing", "work", "working"}
}

// GenerateVocabulary produces n distinct fake nouns. Seeded, so fixture
// vocabularies are reproducible across runs.
func GenerateVocabulary(n int) []string {
	gofakeit.Seed(42)
	seen := make(map[string]struct{}, n)
	words := make([]string, 0, n)
	for len(words) < n {
		w := gofakeit.Noun()
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}
