package analogy

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semshift/semshift/pkg/models"
	"github.com/semshift/semshift/pkg/search"
	"github.com/semshift/semshift/pkg/testutils"
)

func fixtureMatrix(t *testing.T) *models.EmbeddingMatrix {
	t.Helper()
	words := testutils.AnalogyFixtureWords()
	vectors := testutils.AnalogyFixtureVectors()
	data := make([]float32, 0, len(words)*4)
	for _, w := range words {
		data = append(data, vectors[w]...)
	}
	return &models.EmbeddingMatrix{
		Words:      words,
		Dim:        4,
		Normalized: true,
		Signature:  "fixture",
		Data:       data,
	}
}

func newEngine() *Engine {
	return NewEngine(&testutils.StubEmbeddings{
		Dim:      4,
		Fixtures: testutils.AnalogyFixtureVectors(),
	})
}

func assertUnit(t *testing.T, v []float32) {
	t.Helper()
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestTranslateZeroPairsIsIdentity(t *testing.T) {
	matrix := fixtureMatrix(t)

	tr, err := newEngine().Translate(context.Background(), nil, "work", "", matrix)
	require.NoError(t, err)

	assert.Empty(t, tr.Deltas)
	assert.Zero(t, tr.SkippedPairs)
	want := testutils.AnalogyFixtureVectors()["work"]
	for i := range want {
		assert.InDelta(t, want[i], tr.Translated[i], 1e-6)
	}
	assertUnit(t, tr.Translated)
}

func TestTranslateGardenToWorking(t *testing.T) {
	matrix := fixtureMatrix(t)
	pairs := []models.SeedPair{models.NewSeedPair("garden", "gardening")}

	tr, err := newEngine().Translate(context.Background(), pairs, "work", "", matrix)
	require.NoError(t, err)

	vectors := testutils.AnalogyFixtureVectors()
	require.Len(t, tr.Deltas, 1)
	for i := range tr.Deltas[0] {
		want := vectors["gardening"][i] - vectors["garden"][i]
		assert.InDelta(t, want, tr.Deltas[0][i], 1e-6)
	}
	assertUnit(t, tr.Translated)

	exclude := map[string]struct{}{"work": {}}
	results := search.TopK(matrix, tr.Translated, 1, exclude)
	require.Len(t, results, 1)
	assert.Equal(t, "working", results[0].Word)
}

func TestTranslateAveragesMultiplePairs(t *testing.T) {
	matrix := fixtureMatrix(t)
	pairs := []models.SeedPair{
		models.NewSeedPair("garden", "gardening"),
		models.NewSeedPair("belief", "believing"),
	}

	tr, err := newEngine().Translate(context.Background(), pairs, "work", "", matrix)
	require.NoError(t, err)
	require.Len(t, tr.Deltas, 2)

	vectors := testutils.AnalogyFixtureVectors()
	for i := range tr.RawSum {
		avg := (vectors["gardening"][i] - vectors["garden"][i] +
			vectors["believing"][i] - vectors["belief"][i]) / 2
		assert.InDelta(t, vectors["work"][i]+avg, tr.RawSum[i], 1e-6)
	}
}

func TestTranslateSkipsMalformedPairs(t *testing.T) {
	var req models.AnalogySearchRequest
	payload := `{"pairs": [["garden","gardening"], ["belief", 42], "junk", ["lonely"]], "target": "work"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	tr, err := newEngine().Translate(context.Background(), req.Pairs, "work", "", fixtureMatrix(t))
	require.NoError(t, err)

	assert.Equal(t, 3, tr.SkippedPairs)
	require.Len(t, tr.Pairs, 1)
	assert.Equal(t, "garden", tr.Pairs[0].From)
}

func TestTranslateIsDeterministic(t *testing.T) {
	matrix := fixtureMatrix(t)
	pairs := []models.SeedPair{models.NewSeedPair("garden", "gardening")}
	engine := newEngine()

	tr1, err := engine.Translate(context.Background(), pairs, "work", "", matrix)
	require.NoError(t, err)
	tr2, err := engine.Translate(context.Background(), pairs, "work", "", matrix)
	require.NoError(t, err)

	assert.Equal(t, tr1.Translated, tr2.Translated)

	r1 := search.TopK(matrix, tr1.Translated, 3, nil)
	r2 := search.TopK(matrix, tr2.Translated, 3, nil)
	assert.Equal(t, r1, r2)
}

func TestTranslateUsesTemplateSubstitution(t *testing.T) {
	stub := &testutils.StubEmbeddings{Dim: 4, Fixtures: map[string][]float32{
		"I saw work": {0, 0, 1, 0},
	}}

	tr, err := NewEngine(stub).Translate(
		context.Background(), nil, "work", "I saw {w}", fixtureMatrix(t))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(tr.Translated[2]), 1e-6)
}
