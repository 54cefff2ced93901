package models

type PointKind string

const (
	PointKindNeighbor  PointKind = "neighbor"
	PointKindTarget    PointKind = "target"
	PointKindPredicted PointKind = "predicted"
	PointKindSeedFrom  PointKind = "seedFrom"
	PointKindSeedTo    PointKind = "seedTo"
)

// VisualizationPoint is one point in the low-dimensional projection.
// Vector carries the full-dimension embedding into the reducer and is
// never serialized; Coordinates is what the reducer assigned (up to 3
// axes, all zero when projection degrades).
type VisualizationPoint struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Kind        PointKind `json:"kind"`
	Coordinates []float64 `json:"coordinates"`
	Score       *float64  `json:"score,omitempty"`
	Vector      []float32 `json:"-"`
}

// Projection is the reduced point set plus per-axis explained variance.
type Projection struct {
	Points            []VisualizationPoint `json:"points"`
	ExplainedVariance []float64            `json:"explained_variance"`
}

// DimensionReducer maps N full-dimension vectors to N points of at most
// maxComponents coordinates plus per-axis explained variance.
type DimensionReducer interface {
	ReduceDimensions(vectors [][]float32, maxComponents int) (coords [][]float64, explainedVariance []float64, err error)
}
