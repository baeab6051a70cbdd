package kernel

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nozzle/rff/tensor"
)

// SqExp is the squared-exponential (RBF) kernel
//
//	k(x, y) = Variance * exp(-r²/2)
//
// where r² = Σ_i ((x_i - y_i) / Lengthscales_i)². Its spectral measure is a
// standard normal over frequency space.
type SqExp struct {
	Variance     float64
	Lengthscales []float64
}

func (k SqExp) Dims() (int, int) {
	return len(k.Lengthscales), 1
}

func (k SqExp) SpectralDistribution(src rand.Source, n int) *tensor.Dense3 {
	return normalFrequencies(len(k.Lengthscales), n, src)
}

func (k SqExp) SpectralWeights(freq *tensor.Dense3) (float64, []float64) {
	return math.Sqrt(k.Variance), scales(k.Lengthscales)
}

// Cov evaluates the covariance between two points.
func (k SqExp) Cov(x, y []float64) float64 {
	return k.Variance * math.Exp(-0.5*sqScaledDist(x, y, k.Lengthscales))
}

// normalFrequencies draws an (1, inputDim, n) block of standard-normal
// frequency samples.
func normalFrequencies(inputDim, n int, src rand.Source) *tensor.Dense3 {
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	freq := tensor.NewDense3(1, inputDim, n)
	data := freq.Data()
	for i := range data {
		data[i] = norm.Rand()
	}
	return freq
}

// sqScaledDist computes Σ_i ((x_i-y_i)/l_i)². Assumes lengths are equal.
func sqScaledDist(x, y, lengthscales []float64) float64 {
	var sum float64
	for i, xi := range x {
		d := (xi - y[i]) / lengthscales[i]
		sum += d * d
	}
	return sum
}

func scales(lengthscales []float64) []float64 {
	inner := make([]float64, len(lengthscales))
	copy(inner, lengthscales)
	return inner
}
