package regression

import (
	"errors"
	"math"
)

// DegreeCandidate records the fit quality of one polynomial degree.
type DegreeCandidate struct {
	Degree   int
	AICc     float64
	RSquared float64
}

// DegreeSelection is the outcome of an automatic polynomial degree search.
type DegreeSelection struct {
	Best       int
	Candidates []DegreeCandidate
	Result     *Result // fit at the selected degree
}

// SelectDegree fits polynomials of degree 1 through maxDegree to a single
// predictor and selects the degree with the lowest corrected AIC. Degrees
// with too few complete rows to fit are skipped; ties keep the lower degree.
func SelectDegree(x, y []float64, maxDegree int) (*DegreeSelection, error) {
	if maxDegree < 1 {
		return nil, errors.New("regression: maximum degree must be at least 1")
	}

	sel := &DegreeSelection{}
	best := math.Inf(1)

	for degree := 1; degree <= maxDegree; degree++ {
		res, err := Fit(Polynomial, [][]float64{x}, y, &Options{Degree: degree})
		if err != nil {
			continue
		}
		ic := aicc(res)
		sel.Candidates = append(sel.Candidates, DegreeCandidate{
			Degree:   degree,
			AICc:     ic,
			RSquared: res.RSquared,
		})
		if ic < best {
			best = ic
			sel.Best = degree
			sel.Result = res
		}
	}
	if sel.Result == nil {
		return nil, errors.New("regression: no polynomial degree could be selected")
	}
	return sel, nil
}

// aicc scores a fit by corrected AIC from the Gaussian log-likelihood of its
// residuals. Parameters counted are the coefficients plus the intercept. A
// zero-residual fit scores -Inf so the lowest perfect degree wins.
func aicc(r *Result) float64 {
	n := float64(r.N)
	k := float64(len(r.Coefficients) + 1)
	if n-k-1 <= 0 {
		return math.Inf(1)
	}
	variance := r.MSE
	if variance == 0 {
		return math.Inf(-1)
	}

	sse := variance * n
	loglik := -n/2*math.Log(2*math.Pi) - n/2*math.Log(variance) - sse/(2*variance)
	aic := -2*loglik + 2*k
	return aic + 2*k*(k+1)/(n-k-1)
}
