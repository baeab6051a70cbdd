// Package rff approximates Gaussian processes with random Fourier features.
//
// Following the Rahimi-Recht construction, a stationary kernel's implied
// feature map is approximated by L randomized cosine basis functions whose
// frequencies are drawn from the kernel's spectral measure (Bochner's
// theorem). A RandomFeatures instance holds one such random basis together
// with S columns of standard-normal coefficients; each column is one sample
// path of the approximate process. As L grows the evaluated paths converge
// in distribution to draws from the GP with the kernel's covariance.
//
// Basic usage:
//
//	k := kernel.SqExp{Variance: 1, Lengthscales: []float64{1}}
//	rf, err := rff.New(k, rff.DefaultConfig())
//	if err != nil {
//		...
//	}
//	out, err := rf.Evaluate(x, k)
package rff

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nozzle/rff/internal/parallel"
	"github.com/nozzle/rff/kernel"
	"github.com/nozzle/rff/tensor"
)

// Config configures a RandomFeatures basis.
type Config struct {
	// NumFeatures is the number of random cosine features L.
	// Larger values approximate the kernel more closely.
	// Default: 1024
	NumFeatures int

	// NumSamples is the number of weight columns S, one per sample path.
	// 0 means 1.
	// Default: 1
	NumSamples int

	// Seed for random number generation.
	// Use a fixed seed for reproducible bases.
	// Default: 42
	Seed int64

	// NumWorkers for parallel basis construction.
	// 0 = auto-detect based on CPU cores.
	// Default: 0
	NumWorkers int
}

// DefaultConfig returns the default RandomFeatures configuration.
func DefaultConfig() Config {
	return Config{
		NumFeatures: 1024,
		NumSamples:  1,
		Seed:        42,
		NumWorkers:  0,
	}
}

// RandomFeatures is one random trigonometric basis for a kernel, shared by
// all sample paths. It is mutable through Resample only; it is not safe to
// resample concurrently with evaluation, and callers needing that must
// serialize access or copy. Resampling invalidates values drawn from the old
// basis without notifying holders of derived state.
type RandomFeatures struct {
	inputDim  int
	outputDim int

	frequency *tensor.Dense3 // (outputDim, inputDim, L) spectral samples
	phase     *mat.Dense     // (outputDim, L) uniform offsets in [0, 2π)
	weights   *mat.Dense     // (L, S) standard-normal path coefficients

	rng        *rand.Rand
	numWorkers int
}

// New constructs a freshly resampled basis for the kernel. The returned
// instance is never left holding placeholder zeros.
func New(k kernel.Kernel, cfg Config) (*RandomFeatures, error) {
	in, out := k.Dims()
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("%w: kernel dims (%d, %d)", ErrInvalidArgument, in, out)
	}
	if cfg.NumFeatures <= 0 {
		return nil, fmt.Errorf("%w: %d features", ErrInvalidArgument, cfg.NumFeatures)
	}
	numSamples := cfg.NumSamples
	if numSamples == 0 {
		numSamples = 1
	}
	if numSamples < 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidArgument, cfg.NumSamples)
	}
	workers := cfg.NumWorkers
	if workers <= 0 {
		workers = parallel.Workers()
	}

	rf := &RandomFeatures{
		inputDim:   in,
		outputDim:  out,
		frequency:  tensor.NewDense3(out, in, cfg.NumFeatures),
		phase:      mat.NewDense(out, cfg.NumFeatures, nil),
		weights:    mat.NewDense(cfg.NumFeatures, numSamples, nil),
		rng:        rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)+1)),
		numWorkers: workers,
	}
	if err := rf.ResampleN(k, cfg.NumFeatures); err != nil {
		return nil, err
	}
	return rf, nil
}

// NumFeatures returns the feature count L.
func (rf *RandomFeatures) NumFeatures() int {
	_, _, l := rf.frequency.Dims()
	return l
}

// NumSamples returns the number of sample paths S.
func (rf *RandomFeatures) NumSamples() int {
	_, s := rf.weights.Dims()
	return s
}

// Dims returns the input and output dimensionality of the kernel the basis
// was sampled for.
func (rf *RandomFeatures) Dims() (inputDim, outputDim int) {
	return rf.inputDim, rf.outputDim
}

// Resample redraws frequencies, phases, and weights, keeping the current
// feature count and sample-path count.
func (rf *RandomFeatures) Resample(k kernel.Kernel) error {
	return rf.ResampleN(k, rf.NumFeatures())
}

// ResampleN redraws the basis with numFeatures features. The sample-path
// count is preserved.
func (rf *RandomFeatures) ResampleN(k kernel.Kernel, numFeatures int) error {
	if numFeatures <= 0 {
		return fmt.Errorf("%w: %d features", ErrInvalidArgument, numFeatures)
	}
	in, out := k.Dims()
	if in <= 0 || out <= 0 {
		return fmt.Errorf("%w: kernel dims (%d, %d)", ErrInvalidArgument, in, out)
	}
	if in != rf.inputDim || out != rf.outputDim {
		return fmt.Errorf("%w: kernel dims (%d, %d), basis sampled for (%d, %d)",
			ErrShapeMismatch, in, out, rf.inputDim, rf.outputDim)
	}

	freq := k.SpectralDistribution(rf.rng, numFeatures)
	if d1, d2, d3 := freq.Dims(); d1 != out || d2 != in || d3 != numFeatures {
		return fmt.Errorf("%w: spectral samples (%d, %d, %d), want (%d, %d, %d)",
			ErrShapeMismatch, d1, d2, d3, out, in, numFeatures)
	}

	phase := mat.NewDense(out, numFeatures, nil)
	for o := range out {
		row := phase.RawRowView(o)
		for l := range numFeatures {
			row[l] = rf.rng.Float64() * 2 * math.Pi
		}
	}

	rf.frequency = freq
	rf.phase = phase
	rf.weights = rf.normalMatrix(numFeatures, rf.NumSamples())
	return nil
}

// SetNumSamples redraws the weight matrix with n columns, leaving the
// sampled frequencies and phases in place.
func (rf *RandomFeatures) SetNumSamples(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d samples", ErrInvalidArgument, n)
	}
	rf.weights = rf.normalMatrix(rf.NumFeatures(), n)
	return nil
}

// Evaluate computes approximate GP function values at the columns of x.
//
// x has dimensions (inputDim, N); the result has dimensions
// (outputDim, N, S), where entry (o, n, s) is sample path s of output o at
// point n.
func (rf *RandomFeatures) Evaluate(x *mat.Dense, k kernel.Kernel) (*tensor.Dense3, error) {
	rows, n := x.Dims()
	if rows != rf.inputDim {
		return nil, fmt.Errorf("%w: x has %d rows, want %d", ErrShapeMismatch, rows, rf.inputDim)
	}
	outer, inner, err := rf.spectralWeights(k)
	if err != nil {
		return nil, err
	}

	rescaled := rescaleInputs(x, inner)
	scaled := rf.scaledWeights(outer)
	numFeatures := rf.NumFeatures()

	out := tensor.NewDense3(rf.outputDim, n, rf.NumSamples())
	var proj mat.Dense
	basis := mat.NewDense(numFeatures, n, nil)
	for o := range rf.outputDim {
		proj.Mul(rf.frequency.Slice(o).T(), rescaled) // (L, N)
		ph := rf.phase.RawRowView(o)
		parallel.For(0, n, rf.numWorkers, func(col int) {
			for l := range numFeatures {
				basis.Set(l, col, math.Cos(proj.At(l, col)+ph[l]))
			}
		})
		out.Slice(o).Mul(basis.T(), scaled) // (N, S)
	}
	return out, nil
}

// EvaluateGradient computes the input-space gradient of the approximate GP
// at the columns of x. The result has dimensions (inputDim, N, S): every
// point is paired with every sample path. Gradient evaluation is defined for
// scalar-output kernels only.
func (rf *RandomFeatures) EvaluateGradient(x *mat.Dense, g kernel.Gradient) (*tensor.Dense3, error) {
	if rf.outputDim != 1 {
		return nil, fmt.Errorf("%w: gradient needs output dim 1, kernel has %d",
			ErrUnsupportedKernel, rf.outputDim)
	}
	rows, n := x.Dims()
	if rows != rf.inputDim {
		return nil, fmt.Errorf("%w: x has %d rows, want %d", ErrShapeMismatch, rows, rf.inputDim)
	}
	outer, inner, err := rf.spectralWeights(g)
	if err != nil {
		return nil, err
	}

	rescaled := rescaleInputs(x, inner)
	scaled := rf.scaledWeights(outer)
	numFeatures := rf.NumFeatures()
	sin := rf.sinBasis(rescaled, n)

	freq := rf.frequency.Slice(0) // (inputDim, L)
	out := tensor.NewDense3(rf.inputDim, n, rf.NumSamples())
	grad := mat.NewDense(numFeatures, n, nil)
	for i := range rf.inputDim {
		ri := 1 / inner[i]
		for l := range numFeatures {
			fl := freq.At(i, l) * ri
			row := grad.RawRowView(l)
			for col := range n {
				row[col] = sin.At(l, col) * fl
			}
		}
		out.Slice(i).Mul(grad.T(), scaled) // (N, S)
	}
	return out, nil
}

// EvaluateGradientBatch evaluates gradients for one query point set per
// sample path, all sharing this basis. xb has dimensions (inputDim, N, S)
// with S equal to NumSamples; slice (:, :, s) holds the points for path s.
// The result has dimensions (inputDim, N, S), where entry (i, n, s) is
// contracted against weight column s only, unlike EvaluateGradient, which
// pairs every point with every column.
func (rf *RandomFeatures) EvaluateGradientBatch(xb *tensor.Dense3, g kernel.Gradient) (*tensor.Dense3, error) {
	if rf.outputDim != 1 {
		return nil, fmt.Errorf("%w: gradient needs output dim 1, kernel has %d",
			ErrUnsupportedKernel, rf.outputDim)
	}
	d1, n, d3 := xb.Dims()
	numSamples := rf.NumSamples()
	if d1 != rf.inputDim || d3 != numSamples {
		return nil, fmt.Errorf("%w: batch is (%d, %d, %d), want (%d, N, %d)",
			ErrShapeMismatch, d1, n, d3, rf.inputDim, numSamples)
	}
	outer, inner, err := rf.spectralWeights(g)
	if err != nil {
		return nil, err
	}

	// Flatten the sample axis into the point axis. The (inputDim, N, S)
	// layout makes column m of the flat view the point (n, s) with
	// m = n*S + s, sharing xb's backing array.
	total := n * numSamples
	flat := mat.NewDense(rf.inputDim, total, xb.Data())
	rescaled := rescaleInputs(flat, inner)
	numFeatures := rf.NumFeatures()
	sin := rf.sinBasis(rescaled, total)

	// Transposed copies so each point's basis row and each path's weight
	// column are contiguous for the dot products below.
	sinT := mat.NewDense(total, numFeatures, nil)
	sinT.Copy(sin.T())
	scaledT := mat.NewDense(numSamples, numFeatures, nil)
	scaledT.Copy(rf.scaledWeights(outer).T())

	freq := rf.frequency.Slice(0)
	out := tensor.NewDense3(rf.inputDim, n, numSamples)
	fi := make([]float64, numFeatures)
	for i := range rf.inputDim {
		ri := 1 / inner[i]
		for l := range numFeatures {
			fi[l] = freq.At(i, l) * ri
		}
		parallel.Blocks(0, total, rf.numWorkers, func(lo, hi int) {
			tmp := make([]float64, numFeatures)
			for m := lo; m < hi; m++ {
				row := sinT.RawRowView(m)
				for l := range numFeatures {
					tmp[l] = row[l] * fi[l]
				}
				s := m % numSamples
				out.Set(i, m/numSamples, s, vek.Dot(tmp, scaledT.RawRowView(s)))
			}
		})
	}
	return out, nil
}

// sinBasis computes -sin(proj + phase) for a scalar-output basis, where proj
// is the projection of the rescaled points onto the sampled frequencies. The
// result has dimensions (L, n).
func (rf *RandomFeatures) sinBasis(rescaled *mat.Dense, n int) *mat.Dense {
	numFeatures := rf.NumFeatures()
	var proj mat.Dense
	proj.Mul(rf.frequency.Slice(0).T(), rescaled) // (L, n)
	ph := rf.phase.RawRowView(0)

	sin := mat.NewDense(numFeatures, n, nil)
	parallel.For(0, n, rf.numWorkers, func(col int) {
		for l := range numFeatures {
			sin.Set(l, col, -math.Sin(proj.At(l, col)+ph[l]))
		}
	})
	return sin
}

// spectralWeights fetches and validates the kernel's outer and inner
// weights.
func (rf *RandomFeatures) spectralWeights(k kernel.Kernel) (float64, []float64, error) {
	outer, inner := k.SpectralWeights(rf.frequency)
	if len(inner) != rf.inputDim {
		return 0, nil, fmt.Errorf("%w: %d inner weights, want %d",
			ErrShapeMismatch, len(inner), rf.inputDim)
	}
	for i, w := range inner {
		if w <= 0 {
			return 0, nil, fmt.Errorf("%w: inner weight %d is %v", ErrInvalidArgument, i, w)
		}
	}
	return outer, inner, nil
}

// scaledWeights returns outer * sqrt(2/L) * weights. The sqrt(2/L) factor is
// the normalization the spectral decomposition requires; without it the
// approximate covariance does not match the kernel.
func (rf *RandomFeatures) scaledWeights(outer float64) *mat.Dense {
	numFeatures, numSamples := rf.weights.Dims()
	scaled := mat.NewDense(numFeatures, numSamples, nil)
	scaled.Scale(outer*math.Sqrt(2/float64(numFeatures)), rf.weights)
	return scaled
}

func (rf *RandomFeatures) normalMatrix(r, c int) *mat.Dense {
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rf.rng}
	m := mat.NewDense(r, c, nil)
	data := m.RawMatrix().Data
	for i := range data {
		data[i] = norm.Rand()
	}
	return m
}

// rescaleInputs divides each input coordinate by its inner spectral weight.
func rescaleInputs(x *mat.Dense, inner []float64) *mat.Dense {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := range rows {
		ri := 1 / inner[i]
		src := x.RawRowView(i)
		dst := out.RawRowView(i)
		for j := range cols {
			dst[j] = src[j] * ri
		}
	}
	return out
}
