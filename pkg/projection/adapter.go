package projection

import (
	"fmt"

	"github.com/semshift/semshift/internal"
	"github.com/semshift/semshift/pkg/analogy"
	"github.com/semshift/semshift/pkg/models"
)

var log = internal.GetLogger()

// MaxComponents caps the visualization at 3 axes.
const MaxComponents = 3

// Adapter assembles the visualization point set and feeds it through a
// dimensionality reducer. Reduction failure degrades to all-zero
// coordinates; the ranked neighbors remain valid either way.
type Adapter struct {
	reducer models.DimensionReducer
}

func NewAdapter(reducer models.DimensionReducer) *Adapter {
	return &Adapter{reducer: reducer}
}

func NewPCAAdapter() *Adapter {
	return NewAdapter(PCAReducer{})
}

// Project builds points for every neighbor (carrying its score), the
// un-translated target, the translated prediction, and, when requested,
// each seed word's own embedding with a from-to link per pair.
// Point ids are deterministic so repeated queries yield identical output.
func (a *Adapter) Project(
	m *models.EmbeddingMatrix,
	neighbors []models.NeighborResult,
	target string,
	tr *analogy.Translation,
	includeSeeds bool,
) (*models.Projection, []models.SeedLink) {
	points := make([]models.VisualizationPoint, 0, len(neighbors)+2+2*len(tr.Pairs))

	for _, r := range neighbors {
		score := r.Score
		points = append(points, models.VisualizationPoint{
			ID:     fmt.Sprintf("neighbor-%d", r.RowIndex),
			Label:  r.Word,
			Kind:   models.PointKindNeighbor,
			Score:  &score,
			Vector: m.Row(r.RowIndex),
		})
	}

	points = append(points, models.VisualizationPoint{
		ID:     "target",
		Label:  target,
		Kind:   models.PointKindTarget,
		Vector: tr.TargetVector,
	})
	points = append(points, models.VisualizationPoint{
		ID:     "predicted",
		Label:  target,
		Kind:   models.PointKindPredicted,
		Vector: tr.Translated,
	})

	var links []models.SeedLink
	if includeSeeds {
		for i, p := range tr.Pairs {
			fromID := fmt.Sprintf("seed-from-%d", i)
			toID := fmt.Sprintf("seed-to-%d", i)
			points = append(points, models.VisualizationPoint{
				ID:     fromID,
				Label:  p.From,
				Kind:   models.PointKindSeedFrom,
				Vector: p.FromVector,
			})
			points = append(points, models.VisualizationPoint{
				ID:     toID,
				Label:  p.To,
				Kind:   models.PointKindSeedTo,
				Vector: p.ToVector,
			})
			links = append(links, models.SeedLink{FromID: fromID, ToID: toID})
		}
	}

	vectors := make([][]float32, len(points))
	for i := range points {
		vectors[i] = points[i].Vector
	}

	coords, explained, err := a.reducer.ReduceDimensions(vectors, MaxComponents)
	if err != nil {
		log.Warnf("projection degraded to zero coordinates: %v", err)
		coords = make([][]float64, len(points))
		for i := range coords {
			coords[i] = make([]float64, MaxComponents)
		}
		explained = make([]float64, MaxComponents)
	}
	for i := range points {
		points[i].Coordinates = coords[i]
	}

	return &models.Projection{Points: points, ExplainedVariance: explained}, links
}
