// Package kernel defines the spectral contract stationary covariance
// functions expose to the random-feature approximation, together with a set
// of concrete kernels.
//
// A stationary kernel is represented here entirely through its spectral
// measure (Bochner's theorem): Kernel reports its dimensionality, draws
// frequency samples from the spectral distribution, and factors its
// amplitude and length scales into the outer and inner spectral weights
// consumed by the feature evaluators.
package kernel

import (
	"math/rand/v2"

	"github.com/nozzle/rff/tensor"
)

// Kernel is the spectral view of a stationary covariance function.
type Kernel interface {
	// Dims reports input and output dimensionality.
	Dims() (inputDim, outputDim int)

	// SpectralDistribution draws n frequency samples from the kernel's
	// spectral measure. The result has dimensions (outputDim, inputDim, n):
	// one inputDim×n frequency matrix per output dimension, at unit length
	// scale. Length scales enter through the inner spectral weights instead.
	SpectralDistribution(src rand.Source, n int) *tensor.Dense3

	// SpectralWeights returns the amplitude applied after the trigonometric
	// basis (outer) and the per-input-dimension scales dividing the query
	// coordinates before projection (inner, length inputDim).
	SpectralWeights(freq *tensor.Dense3) (outer float64, inner []float64)
}

// Gradient marks a kernel for gradient-mode evaluation: the feature
// evaluators compute the input-space derivative of the process instead of
// its value. All kernel behavior is forwarded to the wrapped kernel.
type Gradient struct {
	Kernel
}

// Independent stacks Outputs independent copies of a scalar-output kernel
// into a multi-output kernel. Each output dimension draws its own
// frequencies; the spectral weights are those of the underlying kernel.
type Independent struct {
	Kernel  Kernel
	Outputs int
}

func (k Independent) Dims() (int, int) {
	in, _ := k.Kernel.Dims()
	return in, k.Outputs
}

func (k Independent) SpectralDistribution(src rand.Source, n int) *tensor.Dense3 {
	in, _ := k.Kernel.Dims()
	freq := tensor.NewDense3(k.Outputs, in, n)
	for o := range k.Outputs {
		block := k.Kernel.SpectralDistribution(src, n)
		freq.Slice(o).Copy(block.Slice(0))
	}
	return freq
}

func (k Independent) SpectralWeights(freq *tensor.Dense3) (float64, []float64) {
	return k.Kernel.SpectralWeights(freq)
}
