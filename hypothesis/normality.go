package hypothesis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ShapiroResult holds a Shapiro-Wilk normality test.
type ShapiroResult struct {
	W float64
	P float64
	N int
}

func (r *ShapiroResult) Name() string        { return "Shapiro-Wilk Test for Normality" }
func (r *ShapiroResult) PValue() float64     { return r.P }
func (r *ShapiroResult) IsSignificant() bool { return r.P < Alpha }

func (r *ShapiroResult) Conclusion() string {
	if r.P < Alpha {
		return "Data is not normally distributed"
	}
	return "Data appears normally distributed"
}

// Interpretation phrases the conclusion in terms of the null hypothesis.
func (r *ShapiroResult) Interpretation() string {
	if r.P < Alpha {
		return "Reject normality assumption"
	}
	return "Fail to reject normality assumption"
}

func (r *ShapiroResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "W-statistic: %.6f\n", r.W)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Sample Size: %d\n", r.N)
	out := reportFooter(b, r.P, r.Conclusion())
	return out + fmt.Sprintf("Interpretation: %s\n", r.Interpretation())
}

// ShapiroWilk tests a sample for normality. Missing values are dropped; the
// test accepts between 3 and 5000 valid observations and rejects constant
// samples, whose statistic is undefined.
func ShapiroWilk(data []float64) (*ShapiroResult, error) {
	clean := dropNaN(data)
	n := len(clean)
	if n < 3 {
		return nil, &InsufficientDataError{Test: "Shapiro-Wilk test", Needed: 3, Got: n}
	}
	if n > 5000 {
		return nil, &SampleTooLargeError{Test: "Shapiro-Wilk test", Max: 5000, Got: n}
	}
	x := make([]float64, n)
	copy(x, clean)
	sort.Float64s(x)
	if x[0] == x[n-1] {
		return nil, errors.New("hypothesis: Shapiro-Wilk test: sample has zero range")
	}
	w, p := swilk(x)
	return &ShapiroResult{W: w, P: p, N: n}, nil
}

// swilk evaluates the Shapiro-Wilk statistic and p-value for sorted data,
// following Royston's AS R94 approximation.
func swilk(x []float64) (float64, float64) {
	n := len(x)
	nf := float64(n)

	m := make([]float64, n)
	var ssm float64
	for i := range m {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (nf + 0.25))
		ssm += m[i] * m[i]
	}

	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
	} else {
		u := 1 / math.Sqrt(nf)
		rs := 1 / math.Sqrt(ssm)
		cn := m[n-1] * rs
		an := cn + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*(-2.706056)))))
		if n > 5 {
			cn1 := m[n-2] * rs
			an1 := cn1 + u*(0.042981+u*(-0.293762+u*(-1.752461+u*(5.682633+u*(-3.582633)))))
			phi := (ssm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
			sp := math.Sqrt(phi)
			a[n-1], a[n-2] = an, an1
			a[0], a[1] = -an, -an1
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / sp
			}
		} else {
			phi := (ssm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			sp := math.Sqrt(phi)
			a[n-1] = an
			a[0] = -an
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / sp
			}
		}
	}

	mean := stat.Mean(x, nil)
	var num, den float64
	for i, v := range x {
		num += a[i] * v
		d := v - mean
		den += d * d
	}
	w := num * num / den
	if w > 1 {
		w = 1
	}

	var p float64
	switch {
	case n == 3:
		p = 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
	case n <= 11:
		g := -2.273 + 0.459*nf
		wt := -math.Log(g - math.Log(1-w))
		mu := 0.5440 + nf*(-0.39978+nf*(0.025054+nf*(-0.0006714)))
		sigma := math.Exp(1.3822 + nf*(-0.77857+nf*(0.062767+nf*(-0.0020322))))
		p = distuv.UnitNormal.Survival((wt - mu) / sigma)
	default:
		ln := math.Log(nf)
		mu := -1.5861 + ln*(-0.31082+ln*(-0.083751+ln*0.0038915))
		sigma := math.Exp(-0.4803 + ln*(-0.082676+ln*0.0030302))
		p = distuv.UnitNormal.Survival((math.Log(1-w) - mu) / sigma)
	}
	return w, p
}

// Distribution names a reference distribution for the Kolmogorov-Smirnov
// test. Parameters are fitted from the sample: the normal uses mean and
// sample deviation, the uniform spans the observed range, the exponential
// is shifted to the minimum with the mean distance as scale.
type Distribution string

// Supported reference distributions.
const (
	DistNormal      Distribution = "norm"
	DistUniform     Distribution = "uniform"
	DistExponential Distribution = "expon"
)

// ErrUnknownDistribution reports a distribution outside the supported set.
var ErrUnknownDistribution = errors.New("hypothesis: unknown distribution")

// ParseDistribution maps a name to a Distribution, ignoring case.
func ParseDistribution(name string) (Distribution, error) {
	switch d := Distribution(strings.ToLower(name)); d {
	case DistNormal, DistUniform, DistExponential:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDistribution, name)
}

func (d Distribution) display() string {
	switch d {
	case DistNormal:
		return "Normal"
	case DistUniform:
		return "Uniform"
	case DistExponential:
		return "Exponential"
	}
	return string(d)
}

// KSResult holds a one-sample Kolmogorov-Smirnov goodness-of-fit test.
type KSResult struct {
	D            float64
	P            float64
	N            int
	Distribution string
}

func (r *KSResult) Name() string {
	return fmt.Sprintf("Kolmogorov-Smirnov Test (%s)", r.Distribution)
}
func (r *KSResult) PValue() float64     { return r.P }
func (r *KSResult) IsSignificant() bool { return r.P < Alpha }

func (r *KSResult) Conclusion() string {
	if r.P < Alpha {
		return fmt.Sprintf("Reject H0 (data does not follow %s distribution)", r.Distribution)
	}
	return fmt.Sprintf("Fail to reject H0 (data follows %s distribution)", r.Distribution)
}

// Interpretation phrases the conclusion in terms of the fit.
func (r *KSResult) Interpretation() string {
	if r.P < Alpha {
		return fmt.Sprintf("Data does not fit %s distribution", r.Distribution)
	}
	return fmt.Sprintf("Data appears to fit %s distribution", r.Distribution)
}

func (r *KSResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "KS-statistic: %.6f\n", r.D)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Sample Size: %d\n", r.N)
	out := reportFooter(b, r.P, r.Conclusion())
	return out + fmt.Sprintf("Interpretation: %s\n", r.Interpretation())
}

// KolmogorovSmirnov tests the sample against a reference distribution with
// parameters fitted from the sample itself. At least 3 valid observations
// are required. The p-value uses the asymptotic Kolmogorov distribution
// with Stephens' small-sample adjustment.
func KolmogorovSmirnov(data []float64, dist Distribution) (*KSResult, error) {
	clean := dropNaN(data)
	n := len(clean)
	if n < 3 {
		return nil, &InsufficientDataError{Test: "Kolmogorov-Smirnov test", Needed: 3, Got: n}
	}

	sorted := make([]float64, n)
	copy(sorted, clean)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[n-1]

	var cdf func(float64) float64
	switch dist {
	case DistNormal:
		sd := math.Sqrt(sampleVariance(sorted))
		if sd == 0 {
			return nil, errors.New("hypothesis: Kolmogorov-Smirnov test: sample has zero variance")
		}
		ref := distuv.Normal{Mu: stat.Mean(sorted, nil), Sigma: sd}
		cdf = ref.CDF
	case DistUniform:
		if hi == lo {
			return nil, errors.New("hypothesis: Kolmogorov-Smirnov test: sample has zero range")
		}
		ref := distuv.Uniform{Min: lo, Max: hi}
		cdf = ref.CDF
	case DistExponential:
		scale := stat.Mean(sorted, nil) - lo
		if scale <= 0 {
			return nil, errors.New("hypothesis: Kolmogorov-Smirnov test: degenerate exponential fit")
		}
		ref := distuv.Exponential{Rate: 1 / scale}
		cdf = func(x float64) float64 { return ref.CDF(x - lo) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDistribution, dist)
	}

	nf := float64(n)
	var d float64
	for i, x := range sorted {
		f := cdf(x)
		if plus := float64(i+1)/nf - f; plus > d {
			d = plus
		}
		if minus := f - float64(i)/nf; minus > d {
			d = minus
		}
	}

	return &KSResult{
		D:            d,
		P:            kolmogorovP(d, n),
		N:            n,
		Distribution: dist.display(),
	}, nil
}

// kolmogorovP approximates the two-sided p-value of the KS statistic from
// the asymptotic Kolmogorov distribution with Stephens' adjustment for
// finite samples.
func kolmogorovP(d float64, n int) float64 {
	sn := math.Sqrt(float64(n))
	lambda := (sn + 0.12 + 0.11/sn) * d
	ll := lambda * lambda
	if ll < 1e-6 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := math.Exp(-2 * float64(j*j) * ll)
		sum += sign * term
		if term < 1e-10 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
