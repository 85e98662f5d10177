package hypothesis

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ANOVAResult holds a one-way analysis of variance.
type ANOVAResult struct {
	F          float64
	P          float64
	NumGroups  int
	GroupSizes []int
	GroupMeans []float64

	// EtaSquared is the effect size SS_between / SS_total, zero when the
	// total sum of squares vanishes.
	EtaSquared float64
}

func (r *ANOVAResult) Name() string        { return "One-way ANOVA" }
func (r *ANOVAResult) PValue() float64     { return r.P }
func (r *ANOVAResult) IsSignificant() bool { return r.P < Alpha }

func (r *ANOVAResult) Conclusion() string {
	if r.P < Alpha {
		return "Reject H0 (group means differ)"
	}
	return "Fail to reject H0 (no significant difference)"
}

func (r *ANOVAResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "F-statistic: %.6f\n", r.F)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Number of Groups: %d\n", r.NumGroups)
	fmt.Fprintf(b, "Group Sizes: %s\n", formatInts(r.GroupSizes))
	fmt.Fprintf(b, "Eta-squared: %.6f\n", r.EtaSquared)
	return reportFooter(b, r.P, r.Conclusion())
}

func formatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, ", ")
}

// ANOVA tests whether two or more independent groups share a mean. Missing
// values are dropped per group; every group needs at least 2 valid
// observations, and the error for an undersized group reports all group
// sizes.
func ANOVA(groups ...[]float64) (*ANOVAResult, error) {
	if len(groups) < 2 {
		return nil, &InsufficientDataError{Test: "one-way ANOVA", Needed: 2, Got: len(groups), Unit: "groups"}
	}

	clean := make([][]float64, len(groups))
	sizes := make([]int, len(groups))
	for i, g := range groups {
		clean[i] = dropNaN(g)
		sizes[i] = len(clean[i])
	}
	for i, g := range clean {
		if len(g) < 2 {
			return nil, &InsufficientDataError{
				Test:   "one-way ANOVA",
				Needed: 2,
				Got:    len(g),
				Group:  i + 1,
				Sizes:  sizes,
			}
		}
	}

	var total float64
	var n int
	means := make([]float64, len(clean))
	for i, g := range clean {
		means[i] = stat.Mean(g, nil)
		for _, v := range g {
			total += v
		}
		n += len(g)
	}
	grand := total / float64(n)

	var ssb, sst float64
	for i, g := range clean {
		d := means[i] - grand
		ssb += float64(len(g)) * d * d
		for _, v := range g {
			dv := v - grand
			sst += dv * dv
		}
	}
	ssw := sst - ssb

	k := len(clean)
	dfb := float64(k - 1)
	dfw := float64(n - k)
	f := (ssb / dfb) / (ssw / dfw)

	eta := 0.0
	if sst > 0 {
		eta = ssb / sst
	}

	dist := distuv.F{D1: dfb, D2: dfw}
	return &ANOVAResult{
		F:          f,
		P:          dist.Survival(f),
		NumGroups:  len(groups),
		GroupSizes: sizes,
		GroupMeans: means,
		EtaSquared: eta,
	}, nil
}
