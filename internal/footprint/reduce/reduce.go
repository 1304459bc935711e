package reduce

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

// Components is the number of principal components kept.
const Components = 2

// Reduce maps each row of features to a 2-D point, preserving row order.
//
// Rows must be non-empty, of equal length and finite, and the resulting
// points must have finite squared distances. With more than two
// columns the data are standardized and projected onto the first two
// principal components; otherwise the rows are copied (a single column gives
// points on the x axis).
func Reduce(features [][]float64) ([]orb.Point, error) {
	n, d, err := shape(features)
	if err != nil {
		return nil, err
	}

	out := make([]orb.Point, n)
	if d <= Components {
		for i, row := range features {
			out[i][0] = row[0]
			if d == 2 {
				out[i][1] = row[1]
			}
		}
		if err := space.CheckSpan(out); err != nil {
			return nil, err
		}
		return out, nil
	}

	x := mat.NewDense(n, d, nil)
	for i, row := range features {
		x.SetRow(i, row)
	}
	Standardize(x)

	proj, err := project(x)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		out[i][0] = proj.At(i, 0)
		out[i][1] = proj.At(i, 1)
	}
	if err := space.CheckSpan(out); err != nil {
		return nil, err
	}
	return out, nil
}

func shape(features [][]float64) (n, d int, err error) {
	n = len(features)
	if n == 0 {
		return 0, 0, fmt.Errorf("no instances to reduce: %w", space.ErrInvalidInput)
	}
	d = len(features[0])
	if d == 0 {
		return 0, 0, fmt.Errorf("feature vectors are empty: %w", space.ErrInvalidInput)
	}
	for i, row := range features {
		if len(row) != d {
			return 0, 0, fmt.Errorf("row %d has %d features, want %d: %w", i, len(row), d, space.ErrInvalidInput)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("row %d feature %d is %v: %w", i, j, v, space.ErrInvalidInput)
			}
		}
	}
	return n, d, nil
}

// Standardize rescales every column of x in place to zero mean and unit
// population variance. Constant columns are only centred.
func Standardize(x *mat.Dense) {
	r, c := x.Dims()
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		floats.AddConst(-mean, col)
		floats.Scale(1/std, col)
		x.SetCol(j, col)
	}
}

// project returns the n×2 scores of x on its first two principal components.
func project(x *mat.Dense) (*mat.Dense, error) {
	n, d := x.Dims()

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, fmt.Errorf("principal component analysis of %dx%d features failed: %w", n, d, space.ErrInvalidInput)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	_, k := vecs.Dims()

	// Fixed-size loading matrix; components that do not exist (k < 2, e.g. a
	// single instance) stay zero and yield a zero coordinate.
	load := mat.NewDense(d, Components, nil)
	for j := 0; j < Components && j < k; j++ {
		col := mat.Col(nil, j, &vecs)
		flipSign(col)
		load.SetCol(j, col)
	}

	// PrincipalComponents centres internally; x is already centred by
	// Standardize, so the projection is a plain product.
	var scores mat.Dense
	scores.Mul(x, load)
	return &scores, nil
}

// flipSign makes the largest-magnitude entry of v positive so that component
// signs do not depend on the decomposition routine.
func flipSign(v []float64) {
	if len(v) == 0 {
		return
	}
	maxIdx := 0
	for i, e := range v {
		if math.Abs(e) > math.Abs(v[maxIdx]) {
			maxIdx = i
		}
	}
	if v[maxIdx] < 0 {
		floats.Scale(-1, v)
	}
}
