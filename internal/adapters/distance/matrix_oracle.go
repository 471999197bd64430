package distance

import (
	"errors"
	"fmt"
	"math"
)

// MatrixOracle answers distance lookups from an in-memory table.
//
// The input may be a full square matrix or a lower-triangular one; a blank
// (zero) or missing cell takes the value of its symmetric counterpart.
// The table is read-only once built and safe for concurrent use.
type MatrixOracle struct {
	m [][]float64
}

func NewMatrixOracle(rows [][]float64) (*MatrixOracle, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.New("matrix oracle: distance table is empty")
	}

	cell := func(i, j int) float64 {
		if j < len(rows[i]) {
			return rows[i][j]
		}
		return 0
	}

	full := make([][]float64, n)
	for i := 0; i < n; i++ {
		if len(rows[i]) > n {
			return nil, fmt.Errorf("matrix oracle: row %d has %d columns, table has %d rows", i, len(rows[i]), n)
		}
		full[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			d := cell(i, j)
			if d == 0 {
				d = cell(j, i)
			}
			if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				return nil, fmt.Errorf("matrix oracle: invalid distance %v at (%d,%d)", d, i, j)
			}
			full[i][j] = d
		}
	}

	return &MatrixOracle{m: full}, nil
}

func (o *MatrixOracle) Distance(from, to int) (float64, error) {
	n := len(o.m)
	if from < 0 || from >= n || to < 0 || to >= n {
		return 0, fmt.Errorf("matrix oracle: location out of range (%d,%d), size=%d", from, to, n)
	}
	return o.m[from][to], nil
}

func (o *MatrixOracle) Size() int { return len(o.m) }
