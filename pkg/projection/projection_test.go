package projection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semshift/semshift/pkg/analogy"
	"github.com/semshift/semshift/pkg/models"
	"github.com/semshift/semshift/pkg/search"
	"github.com/semshift/semshift/pkg/testutils"
)

type failingReducer struct{}

func (failingReducer) ReduceDimensions([][]float32, int) ([][]float64, []float64, error) {
	return nil, nil, errors.New("degenerate input")
}

func fixtureMatrix() *models.EmbeddingMatrix {
	words := testutils.AnalogyFixtureWords()
	vectors := testutils.AnalogyFixtureVectors()
	data := make([]float32, 0, len(words)*4)
	for _, w := range words {
		data = append(data, vectors[w]...)
	}
	return &models.EmbeddingMatrix{
		Words: words, Dim: 4, Normalized: true, Signature: "fixture", Data: data,
	}
}

func translation(t *testing.T, m *models.EmbeddingMatrix) *analogy.Translation {
	t.Helper()
	engine := analogy.NewEngine(&testutils.StubEmbeddings{
		Dim:      4,
		Fixtures: testutils.AnalogyFixtureVectors(),
	})
	pairs := []models.SeedPair{models.NewSeedPair("garden", "gardening")}
	tr, err := engine.Translate(context.Background(), pairs, "work", "", m)
	require.NoError(t, err)
	return tr
}

func TestPCAReducer(t *testing.T) {
	t.Run("ReducesToAtMostThreeComponents", func(t *testing.T) {
		vectors := [][]float32{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
			{0.5, 0.5, 0, 0},
		}
		coords, explained, err := PCAReducer{}.ReduceDimensions(vectors, 3)
		require.NoError(t, err)
		require.Len(t, coords, 5)
		for _, c := range coords {
			assert.Len(t, c, 3)
		}
		assert.Len(t, explained, 3)
		var sum float64
		for _, e := range explained {
			assert.GreaterOrEqual(t, e, 0.0)
			sum += e
		}
		assert.LessOrEqual(t, sum, 1.0+1e-9)
	})

	t.Run("FewerPointsThanComponents", func(t *testing.T) {
		vectors := [][]float32{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
		}
		coords, _, err := PCAReducer{}.ReduceDimensions(vectors, 3)
		require.NoError(t, err)
		for _, c := range coords {
			assert.Len(t, c, 2)
		}
	})

	t.Run("SinglePointFails", func(t *testing.T) {
		_, _, err := PCAReducer{}.ReduceDimensions([][]float32{{1, 0}}, 3)
		assert.Error(t, err)
	})

	t.Run("ZeroVarianceFails", func(t *testing.T) {
		vectors := [][]float32{
			{1, 0},
			{1, 0},
			{1, 0},
		}
		_, _, err := PCAReducer{}.ReduceDimensions(vectors, 3)
		assert.Error(t, err)
	})
}

func TestProjectBuildsPointSet(t *testing.T) {
	m := fixtureMatrix()
	tr := translation(t, m)
	neighbors := search.TopK(m, tr.Translated, 3, map[string]struct{}{"work": {}})

	proj, links := NewPCAAdapter().Project(m, neighbors, "work", tr, true)

	// 3 neighbors + target + predicted + seed from/to
	require.Len(t, proj.Points, 7)
	require.Len(t, links, 1)

	kinds := make(map[models.PointKind]int)
	ids := make(map[string]struct{})
	for _, p := range proj.Points {
		kinds[p.Kind]++
		ids[p.ID] = struct{}{}
		assert.LessOrEqual(t, len(p.Coordinates), MaxComponents)
		assert.NotEmpty(t, p.Coordinates)
	}
	assert.Equal(t, 3, kinds[models.PointKindNeighbor])
	assert.Equal(t, 1, kinds[models.PointKindTarget])
	assert.Equal(t, 1, kinds[models.PointKindPredicted])
	assert.Equal(t, 1, kinds[models.PointKindSeedFrom])
	assert.Equal(t, 1, kinds[models.PointKindSeedTo])

	_, fromOK := ids[links[0].FromID]
	_, toOK := ids[links[0].ToID]
	assert.True(t, fromOK)
	assert.True(t, toOK)

	for _, p := range proj.Points {
		if p.Kind == models.PointKindNeighbor {
			require.NotNil(t, p.Score)
		} else {
			assert.Nil(t, p.Score)
		}
	}
}

func TestProjectWithoutSeeds(t *testing.T) {
	m := fixtureMatrix()
	tr := translation(t, m)
	neighbors := search.TopK(m, tr.Translated, 2, nil)

	proj, links := NewPCAAdapter().Project(m, neighbors, "work", tr, false)
	assert.Len(t, proj.Points, 4)
	assert.Empty(t, links)
}

func TestProjectDegradesGracefully(t *testing.T) {
	m := fixtureMatrix()
	tr := translation(t, m)
	neighbors := search.TopK(m, tr.Translated, 2, nil)

	proj, _ := NewAdapter(failingReducer{}).Project(m, neighbors, "work", tr, false)

	require.Len(t, proj.Points, 4)
	for _, p := range proj.Points {
		assert.Equal(t, []float64{0, 0, 0}, p.Coordinates)
	}
	assert.Equal(t, []float64{0, 0, 0}, proj.ExplainedVariance)
}
