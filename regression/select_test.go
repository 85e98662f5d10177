package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDegree(t *testing.T) {
	// Quadratic signal with small alternating noise: degree 2 should win
	// over both the underfitting line and the overfitting cubics.
	x := seq(0, 9)
	y := make([]float64, len(x))
	for i, v := range x {
		noise := 0.5
		if i%2 == 1 {
			noise = -0.5
		}
		y[i] = v*v - 2*v + 3 + noise
	}

	sel, err := SelectDegree(x, y, 4)
	require.NoError(t, err)

	assert.Equal(t, 2, sel.Best)
	require.Len(t, sel.Candidates, 4)
	assert.Equal(t, 1, sel.Candidates[0].Degree)
	assert.Less(t, sel.Candidates[1].AICc, sel.Candidates[0].AICc)

	require.NotNil(t, sel.Result)
	assert.Equal(t, Polynomial, sel.Result.Kind)
	assert.Equal(t, 2, sel.Result.Degree)
	assert.Greater(t, sel.Result.RSquared, 0.99)
}

func TestSelectDegreeSkipsUnfittable(t *testing.T) {
	// Five points cannot support a quartic; the search falls back to the
	// degrees that fit.
	x := seq(1, 5)
	y := []float64{2, 4, 5, 7, 8}

	sel, err := SelectDegree(x, y, 6)
	require.NoError(t, err)

	for _, c := range sel.Candidates {
		assert.LessOrEqual(t, c.Degree, 3)
	}
	assert.GreaterOrEqual(t, sel.Best, 1)
}

func TestSelectDegreeValidation(t *testing.T) {
	_, err := SelectDegree(seq(1, 10), seq(1, 10), 0)
	assert.Error(t, err)

	// Three points fit a line but leave no room for the small-sample
	// correction, so nothing can be selected.
	_, err = SelectDegree([]float64{1, 2, 3}, []float64{2, 4, 7}, 3)
	assert.Error(t, err)
}
