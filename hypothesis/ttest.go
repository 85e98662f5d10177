package hypothesis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func rejectH0(p float64) string {
	if p < Alpha {
		return "Reject H0"
	}
	return "Fail to reject H0"
}

// OneSampleTResult holds a one-sample t-test against a hypothesized mean.
type OneSampleTResult struct {
	T                float64
	P                float64
	DF               int
	SampleMean       float64
	HypothesizedMean float64
	N                int
	Alternative      Alternative
	CILow            float64
	CIHigh           float64
}

func (r *OneSampleTResult) Name() string        { return "One-Sample t-test" }
func (r *OneSampleTResult) PValue() float64     { return r.P }
func (r *OneSampleTResult) IsSignificant() bool { return r.P < Alpha }
func (r *OneSampleTResult) Conclusion() string  { return rejectH0(r.P) }

func (r *OneSampleTResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "t-statistic: %.6f\n", r.T)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Sample Size: %d\n", r.N)
	fmt.Fprintf(b, "Sample Mean: %.6f\n", r.SampleMean)
	fmt.Fprintf(b, "95%% CI: [%.6f, %.6f]\n", r.CILow, r.CIHigh)
	return reportFooter(b, r.P, r.Conclusion())
}

// OneSampleT tests whether the sample mean differs from mu0. Missing values
// are dropped; at least 2 valid observations are required. The confidence
// interval is always the central 95% interval regardless of the alternative.
func OneSampleT(data []float64, mu0 float64, alt Alternative) (*OneSampleTResult, error) {
	if err := checkAlternative(alt); err != nil {
		return nil, err
	}
	clean := dropNaN(data)
	n := len(clean)
	if n < 2 {
		return nil, &InsufficientDataError{Test: "one-sample t-test", Needed: 2, Got: n}
	}

	mean := stat.Mean(clean, nil)
	se := math.Sqrt(sampleVariance(clean) / float64(n))
	df := n - 1
	t := (mean - mu0) / se
	tCrit := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}.Quantile(0.975)

	return &OneSampleTResult{
		T:                t,
		P:                tPValue(t, float64(df), alt),
		DF:               df,
		SampleMean:       mean,
		HypothesizedMean: mu0,
		N:                n,
		Alternative:      alt,
		CILow:            mean - tCrit*se,
		CIHigh:           mean + tCrit*se,
	}, nil
}

// TwoSampleTResult holds an independent two-sample t-test.
type TwoSampleTResult struct {
	T              float64
	P              float64
	Group1Mean     float64
	Group2Mean     float64
	N1             int
	N2             int
	EqualVariances bool
	Alternative    Alternative

	// CohensD is the effect size with the pooled standard deviation,
	// regardless of the variance assumption used for the statistic.
	CohensD float64
}

func (r *TwoSampleTResult) Name() string        { return "Two-Sample t-test (Independent)" }
func (r *TwoSampleTResult) PValue() float64     { return r.P }
func (r *TwoSampleTResult) IsSignificant() bool { return r.P < Alpha }
func (r *TwoSampleTResult) Conclusion() string  { return rejectH0(r.P) }

func (r *TwoSampleTResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "t-statistic: %.6f\n", r.T)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Group 1 Size: %d\n", r.N1)
	fmt.Fprintf(b, "Group 2 Size: %d\n", r.N2)
	fmt.Fprintf(b, "Group 1 Mean: %.6f\n", r.Group1Mean)
	fmt.Fprintf(b, "Group 2 Mean: %.6f\n", r.Group2Mean)
	fmt.Fprintf(b, "Cohen's d: %.6f\n", r.CohensD)
	return reportFooter(b, r.P, r.Conclusion())
}

// TwoSampleT tests whether two independent samples share a mean. With
// equalVar the classic pooled-variance statistic is used, otherwise Welch's
// statistic with the Welch-Satterthwaite degrees of freedom. Each group
// needs at least 2 valid observations.
func TwoSampleT(group1, group2 []float64, equalVar bool, alt Alternative) (*TwoSampleTResult, error) {
	if err := checkAlternative(alt); err != nil {
		return nil, err
	}
	g1 := dropNaN(group1)
	g2 := dropNaN(group2)
	n1, n2 := len(g1), len(g2)
	if n1 < 2 {
		return nil, &InsufficientDataError{Test: "two-sample t-test", Needed: 2, Got: n1, Group: 1, Sizes: []int{n1, n2}}
	}
	if n2 < 2 {
		return nil, &InsufficientDataError{Test: "two-sample t-test", Needed: 2, Got: n2, Group: 2, Sizes: []int{n1, n2}}
	}

	m1, m2 := stat.Mean(g1, nil), stat.Mean(g2, nil)
	v1, v2 := sampleVariance(g1), sampleVariance(g2)
	f1, f2 := float64(n1), float64(n2)

	var t, df float64
	if equalVar {
		sp2 := ((f1-1)*v1 + (f2-1)*v2) / (f1 + f2 - 2)
		t = (m1 - m2) / math.Sqrt(sp2*(1/f1+1/f2))
		df = f1 + f2 - 2
	} else {
		a, b := v1/f1, v2/f2
		t = (m1 - m2) / math.Sqrt(a+b)
		df = (a + b) * (a + b) / (a*a/(f1-1) + b*b/(f2-1))
	}

	pooled := math.Sqrt(((f1-1)*v1 + (f2-1)*v2) / (f1 + f2 - 2))

	return &TwoSampleTResult{
		T:              t,
		P:              tPValue(t, df, alt),
		Group1Mean:     m1,
		Group2Mean:     m2,
		N1:             n1,
		N2:             n2,
		EqualVariances: equalVar,
		Alternative:    alt,
		CohensD:        (m1 - m2) / pooled,
	}, nil
}

// PairedTResult holds a paired t-test over before/after measurements.
type PairedTResult struct {
	// T follows the before-after ordering of the differences; the reported
	// MeanDifference and CohensD follow after-before.
	T              float64
	P              float64
	MeanDifference float64
	BeforeMean     float64
	AfterMean      float64
	NPairs         int
	Alternative    Alternative
	CohensD        float64
}

func (r *PairedTResult) Name() string        { return "Paired t-test" }
func (r *PairedTResult) PValue() float64     { return r.P }
func (r *PairedTResult) IsSignificant() bool { return r.P < Alpha }
func (r *PairedTResult) Conclusion() string  { return rejectH0(r.P) }

func (r *PairedTResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "t-statistic: %.6f\n", r.T)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Number of Pairs: %d\n", r.NPairs)
	fmt.Fprintf(b, "Cohen's d: %.6f\n", r.CohensD)
	return reportFooter(b, r.P, r.Conclusion())
}

// PairedT tests whether paired measurements share a mean. Pairs with a
// missing value on either side are dropped; at least 2 complete pairs are
// required.
func PairedT(before, after []float64, alt Alternative) (*PairedTResult, error) {
	if err := checkAlternative(alt); err != nil {
		return nil, err
	}
	if len(before) != len(after) {
		return nil, &LengthMismatchError{XLen: len(before), YLen: len(after)}
	}
	b, a := completePairs(before, after)
	n := len(b)
	if n < 2 {
		return nil, &InsufficientDataError{Test: "paired t-test", Needed: 2, Got: n}
	}

	diffs := make([]float64, n)
	for i := range b {
		diffs[i] = b[i] - a[i]
	}
	meanBA := stat.Mean(diffs, nil)
	sd := math.Sqrt(sampleVariance(diffs))
	fn := float64(n)
	t := meanBA / (sd / math.Sqrt(fn))

	return &PairedTResult{
		T:              t,
		P:              tPValue(t, fn-1, alt),
		MeanDifference: -meanBA,
		BeforeMean:     stat.Mean(b, nil),
		AfterMean:      stat.Mean(a, nil),
		NPairs:         n,
		Alternative:    alt,
		CohensD:        -meanBA / sd,
	}, nil
}

// ZTestResult holds a one-sample z-test with known population deviation.
type ZTestResult struct {
	Z                float64
	P                float64
	SampleMean       float64
	HypothesizedMean float64
	PopulationStd    float64
	N                int
	Alternative      Alternative
	CILow            float64
	CIHigh           float64
}

func (r *ZTestResult) Name() string        { return "One-Sample z-test" }
func (r *ZTestResult) PValue() float64     { return r.P }
func (r *ZTestResult) IsSignificant() bool { return r.P < Alpha }
func (r *ZTestResult) Conclusion() string  { return rejectH0(r.P) }

func (r *ZTestResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "z-statistic: %.6f\n", r.Z)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Sample Size: %d\n", r.N)
	fmt.Fprintf(b, "Sample Mean: %.6f\n", r.SampleMean)
	fmt.Fprintf(b, "95%% CI: [%.6f, %.6f]\n", r.CILow, r.CIHigh)
	return reportFooter(b, r.P, r.Conclusion())
}

// ZTest tests whether the sample mean differs from mu0 when the population
// standard deviation sigma is known. A single valid observation suffices.
func ZTest(data []float64, mu0, sigma float64, alt Alternative) (*ZTestResult, error) {
	if err := checkAlternative(alt); err != nil {
		return nil, err
	}
	if sigma <= 0 {
		return nil, errors.New("hypothesis: population standard deviation must be positive")
	}
	clean := dropNaN(data)
	n := len(clean)
	if n < 1 {
		return nil, &InsufficientDataError{Test: "one-sample z-test", Needed: 1, Got: n}
	}

	mean := stat.Mean(clean, nil)
	se := sigma / math.Sqrt(float64(n))
	z := (mean - mu0) / se
	zCrit := distuv.UnitNormal.Quantile(0.975)

	return &ZTestResult{
		Z:                z,
		P:                zPValue(z, alt),
		SampleMean:       mean,
		HypothesizedMean: mu0,
		PopulationStd:    sigma,
		N:                n,
		Alternative:      alt,
		CILow:            mean - zCrit*se,
		CIHigh:           mean + zCrit*se,
	}, nil
}
