package hypothesis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// rankAverageTies assigns 1-based ranks averaged over tied runs and returns
// the sizes of runs larger than one.
func rankAverageTies(x []float64) ([]float64, []int) {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	ranks := make([]float64, len(x))
	var ties []int
	for i := 0; i < len(idx); {
		j := i + 1
		for j < len(idx) && x[idx[j]] == x[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		if j-i > 1 {
			ties = append(ties, j-i)
		}
		i = j
	}
	return ranks, ties
}

func tieSum(ties []int) float64 {
	var s float64
	for _, t := range ties {
		tf := float64(t)
		s += tf*tf*tf - tf
	}
	return s
}

// MannWhitneyResult holds a Mann-Whitney U test of two independent samples.
type MannWhitneyResult struct {
	U            float64 // U statistic of the first group
	P            float64
	Group1Median float64
	Group2Median float64
	N1           int
	N2           int
	Alternative  Alternative
}

func (r *MannWhitneyResult) Name() string        { return "Mann-Whitney U Test" }
func (r *MannWhitneyResult) PValue() float64     { return r.P }
func (r *MannWhitneyResult) IsSignificant() bool { return r.P < Alpha }

func (r *MannWhitneyResult) Conclusion() string {
	if r.P < Alpha {
		return "Reject H0 (groups differ)"
	}
	return "Fail to reject H0 (no difference)"
}

func (r *MannWhitneyResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "U-statistic: %.6f\n", r.U)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Group 1 Size: %d\n", r.N1)
	fmt.Fprintf(b, "Group 2 Size: %d\n", r.N2)
	fmt.Fprintf(b, "Group 1 Median: %.6f\n", r.Group1Median)
	fmt.Fprintf(b, "Group 2 Median: %.6f\n", r.Group2Median)
	return reportFooter(b, r.P, r.Conclusion())
}

// MannWhitney tests whether two independent samples come from the same
// distribution. Each group needs at least one valid observation. The
// p-value uses the normal approximation with tie correction and a
// continuity correction.
func MannWhitney(group1, group2 []float64, alt Alternative) (*MannWhitneyResult, error) {
	if err := checkAlternative(alt); err != nil {
		return nil, err
	}
	g1 := dropNaN(group1)
	g2 := dropNaN(group2)
	n1, n2 := len(g1), len(g2)
	if n1 < 1 {
		return nil, &InsufficientDataError{Test: "Mann-Whitney U test", Needed: 1, Got: n1, Group: 1, Sizes: []int{n1, n2}}
	}
	if n2 < 1 {
		return nil, &InsufficientDataError{Test: "Mann-Whitney U test", Needed: 1, Got: n2, Group: 2, Sizes: []int{n1, n2}}
	}

	combined := make([]float64, 0, n1+n2)
	combined = append(combined, g1...)
	combined = append(combined, g2...)
	ranks, ties := rankAverageTies(combined)

	var r1 float64
	for _, r := range ranks[:n1] {
		r1 += r
	}
	f1, f2 := float64(n1), float64(n2)
	u1 := f1*f2 + f1*(f1+1)/2 - r1
	u2 := f1*f2 - u1

	nTot := f1 + f2
	mu := f1 * f2 / 2
	sigma2 := f1 * f2 / 12 * ((nTot + 1) - tieSum(ties)/(nTot*(nTot-1)))
	if sigma2 <= 0 {
		return nil, errors.New("hypothesis: Mann-Whitney U test: all observations are identical")
	}
	sigma := math.Sqrt(sigma2)

	var u float64
	switch alt {
	case Greater:
		u = u1
	case Less:
		u = u2
	default:
		u = math.Max(u1, u2)
	}
	z := (u - mu - 0.5) / sigma
	p := distuv.UnitNormal.Survival(z)
	if alt == TwoSided {
		p = math.Min(2*p, 1)
	}

	return &MannWhitneyResult{
		U:            u1,
		P:            p,
		Group1Median: median(g1),
		Group2Median: median(g2),
		N1:           n1,
		N2:           n2,
		Alternative:  alt,
	}, nil
}

// WilcoxonResult holds a Wilcoxon signed-rank test over paired samples.
type WilcoxonResult struct {
	W                float64
	P                float64
	NPairs           int
	NNonzero         int
	MedianDifference float64
	Alternative      Alternative
}

func (r *WilcoxonResult) Name() string        { return "Wilcoxon Signed-Rank Test" }
func (r *WilcoxonResult) PValue() float64     { return r.P }
func (r *WilcoxonResult) IsSignificant() bool { return r.P < Alpha }

func (r *WilcoxonResult) Conclusion() string {
	if r.P < Alpha {
		return "Reject H0 (significant difference)"
	}
	return "Fail to reject H0 (no significant difference)"
}

func (r *WilcoxonResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "W-statistic: %.6f\n", r.W)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Number of Pairs: %d\n", r.NPairs)
	return reportFooter(b, r.P, r.Conclusion())
}

// Wilcoxon tests whether paired measurements share a distribution, using
// the signed ranks of the after-before differences. Pairs with a missing
// side are dropped, then zero differences are discarded; at least 3
// non-zero differences are required. For a two-sided alternative the
// statistic is the smaller of the positive and negative rank sums,
// otherwise the positive rank sum. The p-value uses the normal
// approximation with tie correction.
func Wilcoxon(before, after []float64, alt Alternative) (*WilcoxonResult, error) {
	if err := checkAlternative(alt); err != nil {
		return nil, err
	}
	if len(before) != len(after) {
		return nil, &LengthMismatchError{XLen: len(before), YLen: len(after)}
	}
	b, a := completePairs(before, after)
	nPairs := len(b)
	if nPairs < 3 {
		return nil, &InsufficientDataError{Test: "Wilcoxon signed-rank test", Needed: 3, Got: nPairs, Unit: "complete pairs"}
	}

	diffs := make([]float64, 0, nPairs)
	for i := range b {
		if d := a[i] - b[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	nz := len(diffs)
	if nz < 3 {
		return nil, &InsufficientDataError{Test: "Wilcoxon signed-rank test", Needed: 3, Got: nz, Unit: "non-zero differences"}
	}

	absd := make([]float64, nz)
	for i, d := range diffs {
		absd[i] = math.Abs(d)
	}
	ranks, ties := rankAverageTies(absd)

	var rPlus float64
	for i, d := range diffs {
		if d > 0 {
			rPlus += ranks[i]
		}
	}
	n := float64(nz)
	rMinus := n*(n+1)/2 - rPlus

	mn := n * (n + 1) / 4
	se := math.Sqrt((n*(n+1)*(2*n+1) - 0.5*tieSum(ties)) / 24)

	var w float64
	if alt == TwoSided {
		w = math.Min(rPlus, rMinus)
	} else {
		w = rPlus
	}
	z := (w - mn) / se

	var p float64
	switch alt {
	case Greater:
		p = distuv.UnitNormal.Survival(z)
	case Less:
		p = distuv.UnitNormal.CDF(z)
	default:
		p = 2 * distuv.UnitNormal.Survival(math.Abs(z))
	}

	return &WilcoxonResult{
		W:                w,
		P:                p,
		NPairs:           nPairs,
		NNonzero:         nz,
		MedianDifference: median(diffs),
		Alternative:      alt,
	}, nil
}

// KruskalWallisResult holds a Kruskal-Wallis rank test over independent
// groups.
type KruskalWallisResult struct {
	H            float64
	P            float64
	NumGroups    int
	GroupSizes   []int
	GroupMedians []float64
}

func (r *KruskalWallisResult) Name() string        { return "Kruskal-Wallis Test" }
func (r *KruskalWallisResult) PValue() float64     { return r.P }
func (r *KruskalWallisResult) IsSignificant() bool { return r.P < Alpha }

func (r *KruskalWallisResult) Conclusion() string {
	if r.P < Alpha {
		return "Reject H0 (group distributions differ)"
	}
	return "Fail to reject H0 (no significant difference)"
}

func (r *KruskalWallisResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "H-statistic: %.6f\n", r.H)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Number of Groups: %d\n", r.NumGroups)
	fmt.Fprintf(b, "Group Sizes: %s\n", formatInts(r.GroupSizes))
	return reportFooter(b, r.P, r.Conclusion())
}

// KruskalWallis tests whether two or more independent groups share a
// distribution. Every group needs at least one valid observation. The
// statistic is tie-corrected and referred to the chi-squared distribution
// with k-1 degrees of freedom.
func KruskalWallis(groups ...[]float64) (*KruskalWallisResult, error) {
	if len(groups) < 2 {
		return nil, &InsufficientDataError{Test: "Kruskal-Wallis test", Needed: 2, Got: len(groups), Unit: "groups"}
	}

	clean := make([][]float64, len(groups))
	sizes := make([]int, len(groups))
	for i, g := range groups {
		clean[i] = dropNaN(g)
		sizes[i] = len(clean[i])
	}
	for i, g := range clean {
		if len(g) < 1 {
			return nil, &InsufficientDataError{
				Test:   "Kruskal-Wallis test",
				Needed: 1,
				Got:    0,
				Group:  i + 1,
				Sizes:  sizes,
			}
		}
	}

	var combined []float64
	for _, g := range clean {
		combined = append(combined, g...)
	}
	n := float64(len(combined))
	ranks, ties := rankAverageTies(combined)

	h := 0.0
	offset := 0
	medians := make([]float64, len(clean))
	for i, g := range clean {
		var rsum float64
		for j := range g {
			rsum += ranks[offset+j]
		}
		offset += len(g)
		h += rsum * rsum / float64(len(g))
		medians[i] = median(g)
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	correction := 1 - tieSum(ties)/(n*n*n-n)
	if correction == 0 {
		return nil, errors.New("hypothesis: Kruskal-Wallis test: all observations are identical")
	}
	h /= correction

	df := len(clean) - 1
	return &KruskalWallisResult{
		H:            h,
		P:            chiSquareP(h, df),
		NumGroups:    len(groups),
		GroupSizes:   sizes,
		GroupMedians: medians,
	}, nil
}
