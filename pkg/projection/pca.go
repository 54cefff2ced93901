package projection

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/semshift/semshift/pkg/models"
)

var _ models.DimensionReducer = PCAReducer{}

// PCAReducer maps N full-dimension vectors onto their first principal
// components, at most maxComponents (and never more than N or D allow).
type PCAReducer struct{}

func (PCAReducer) ReduceDimensions(
	vectors [][]float32,
	maxComponents int,
) ([][]float64, []float64, error) {
	n := len(vectors)
	if n < 2 {
		return nil, nil, fmt.Errorf("need at least 2 points for PCA, have %d", n)
	}
	d := len(vectors[0])
	k := min(maxComponents, n, d)
	if k < 1 {
		return nil, nil, fmt.Errorf("cannot project %d points of dimension %d", n, d)
	}

	data := mat.NewDense(n, d, nil)
	for i, v := range vectors {
		if len(v) != d {
			return nil, nil, fmt.Errorf(
				"point %d has dimension %d, expected %d", i, len(v), d)
		}
		for j, f := range v {
			data.Set(i, j, float64(f))
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, nil, fmt.Errorf("principal component decomposition failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	var projected mat.Dense
	projected.Mul(data, vecs.Slice(0, d, 0, k))

	coords := make([][]float64, n)
	for i := range coords {
		row := make([]float64, k)
		for j := 0; j < k; j++ {
			row[j] = projected.At(i, j)
		}
		coords[i] = row
	}

	total := floats.Sum(vars)
	if total == 0 {
		return nil, nil, fmt.Errorf("input points have zero variance")
	}
	explained := make([]float64, k)
	for j := 0; j < k; j++ {
		explained[j] = vars[j] / total
	}

	return coords, explained, nil
}
