package kernel

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nozzle/rff/tensor"
)

// Matern kernels with half-integer smoothness ν. The spectral measure of a
// Matern kernel is a multivariate Student-t with 2ν degrees of freedom, so a
// unit-length-scale frequency sample is z·sqrt(2ν/u) with z standard normal
// and u ~ χ²(2ν), one u per frequency vector.

// Matern12 is the exponential kernel (ν = 1/2),
//
//	k(x, y) = Variance * exp(-r).
type Matern12 struct {
	Variance     float64
	Lengthscales []float64
}

func (k Matern12) Dims() (int, int) {
	return len(k.Lengthscales), 1
}

func (k Matern12) SpectralDistribution(src rand.Source, n int) *tensor.Dense3 {
	return maternFrequencies(len(k.Lengthscales), n, 1, src)
}

func (k Matern12) SpectralWeights(freq *tensor.Dense3) (float64, []float64) {
	return math.Sqrt(k.Variance), scales(k.Lengthscales)
}

// Cov evaluates the covariance between two points.
func (k Matern12) Cov(x, y []float64) float64 {
	r := math.Sqrt(sqScaledDist(x, y, k.Lengthscales))
	return k.Variance * math.Exp(-r)
}

// Matern32 is the Matern kernel with ν = 3/2,
//
//	k(x, y) = Variance * (1 + √3 r) * exp(-√3 r).
type Matern32 struct {
	Variance     float64
	Lengthscales []float64
}

func (k Matern32) Dims() (int, int) {
	return len(k.Lengthscales), 1
}

func (k Matern32) SpectralDistribution(src rand.Source, n int) *tensor.Dense3 {
	return maternFrequencies(len(k.Lengthscales), n, 3, src)
}

func (k Matern32) SpectralWeights(freq *tensor.Dense3) (float64, []float64) {
	return math.Sqrt(k.Variance), scales(k.Lengthscales)
}

// Cov evaluates the covariance between two points.
func (k Matern32) Cov(x, y []float64) float64 {
	a := math.Sqrt(3 * sqScaledDist(x, y, k.Lengthscales))
	return k.Variance * (1 + a) * math.Exp(-a)
}

// Matern52 is the Matern kernel with ν = 5/2,
//
//	k(x, y) = Variance * (1 + √5 r + 5r²/3) * exp(-√5 r).
type Matern52 struct {
	Variance     float64
	Lengthscales []float64
}

func (k Matern52) Dims() (int, int) {
	return len(k.Lengthscales), 1
}

func (k Matern52) SpectralDistribution(src rand.Source, n int) *tensor.Dense3 {
	return maternFrequencies(len(k.Lengthscales), n, 5, src)
}

func (k Matern52) SpectralWeights(freq *tensor.Dense3) (float64, []float64) {
	return math.Sqrt(k.Variance), scales(k.Lengthscales)
}

// Cov evaluates the covariance between two points.
func (k Matern52) Cov(x, y []float64) float64 {
	r2 := sqScaledDist(x, y, k.Lengthscales)
	a := math.Sqrt(5 * r2)
	return k.Variance * (1 + a + 5*r2/3) * math.Exp(-a)
}

// maternFrequencies draws a (1, inputDim, n) block of multivariate-t
// frequency samples with dof degrees of freedom (dof = 2ν).
func maternFrequencies(inputDim, n int, dof float64, src rand.Source) *tensor.Dense3 {
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	chi2 := distuv.ChiSquared{K: dof, Src: src}
	freq := tensor.NewDense3(1, inputDim, n)
	for l := range n {
		scale := math.Sqrt(dof / chi2.Rand())
		for i := range inputDim {
			freq.Set(0, i, l, scale*norm.Rand())
		}
	}
	return freq
}
