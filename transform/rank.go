package transform

import (
	"fmt"
	"math"
	"sort"
)

// rankTransform replaces each valid value by its 1-based rank, leaving
// missing values in place. Ties are resolved by the chosen method.
func rankTransform(data []float64, method RankMethod) (*Result, error) {
	switch method {
	case RankAverage, RankMin, RankMax, RankFirst, RankDense:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRankMethod, method)
	}

	idx := make([]int, 0, len(data))
	for i, v := range data {
		if !math.IsNaN(v) {
			idx = append(idx, i)
		}
	}
	// Stable sort keeps original order within ties, which is exactly the
	// "first" method's rank order.
	sort.SliceStable(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	out := make([]float64, len(data))
	for i := range out {
		out[i] = math.NaN()
	}

	dense := 0.0
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && data[idx[j]] == data[idx[i]] {
			j++
		}
		dense++
		for k := i; k < j; k++ {
			switch method {
			case RankAverage:
				out[idx[k]] = float64(i+j+1) / 2
			case RankMin:
				out[idx[k]] = float64(i + 1)
			case RankMax:
				out[idx[k]] = float64(j)
			case RankFirst:
				out[idx[k]] = float64(k + 1)
			case RankDense:
				out[idx[k]] = dense
			}
		}
		i = j
	}

	return &Result{Kind: Rank, Method: method, Data: out}, nil
}
