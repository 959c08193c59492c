// Package complexity computes the normalized permutation entropy and the
// statistical complexity of an ordinal-pattern distribution.
package complexity

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Measures is the full set of statistics derived from one distribution.
type Measures struct {
	H     float64 // normalized Shannon entropy
	C     float64 // statistical complexity
	D     float64 // Jensen–Shannon divergence to uniform
	DStar float64 // normalization constant for n bins
}

// Shannon returns S(p) = Σ p·ln(1/p), skipping empty bins.
func Shannon(p []float64) float64 {
	return stat.Entropy(p)
}

// NormalizedEntropy returns S(p)/ln(n), or 0 when n <= 1.
func NormalizedEntropy(p []float64) float64 {
	n := len(p)
	if n <= 1 {
		return 0
	}
	return Shannon(p) / math.Log(float64(n))
}

// Uniform returns the uniform distribution over n bins.
func Uniform(n int) []float64 {
	u := make([]float64, n)
	for i := range u {
		u[i] = 1.0 / float64(n)
	}
	return u
}

// JensenShannonToUniform returns S((p+u)/2) - S(p)/2 - S(u)/2 where u is
// uniform over len(p) bins.
func JensenShannonToUniform(p []float64) float64 {
	n := len(p)
	if n == 0 {
		return 0
	}

	u := Uniform(n)
	mid := make([]float64, n)
	floats.AddTo(mid, p, u)
	floats.Scale(0.5, mid)

	return Shannon(mid) - 0.5*Shannon(p) - 0.5*Shannon(u)
}

// DStar is the divergence between a one-hot distribution and the uniform
// distribution over n bins, the upper bound used to normalize C.
func DStar(n int) float64 {
	if n < 1 {
		return 0
	}
	nf := float64(n)
	return -0.5 * ((nf+1)/nf*math.Log(nf+1) + math.Log(nf) - 2*math.Log(2*nf))
}

// Statistical evaluates every measure for p. C is D*H/D* when D* > 0 and 0
// otherwise.
func Statistical(p []float64) Measures {
	m := Measures{
		H:     NormalizedEntropy(p),
		D:     JensenShannonToUniform(p),
		DStar: DStar(len(p)),
	}
	if m.DStar > 0 {
		m.C = m.D * m.H / m.DStar
	}
	return m
}
