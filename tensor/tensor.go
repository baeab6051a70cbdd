// Package tensor provides a minimal dense rank-3 tensor backed by a flat
// float64 slice, with contiguous matrix views along the leading axis.
package tensor

import "gonum.org/v1/gonum/mat"

// Dense3 is a dense rank-3 tensor with dimensions (d1, d2, d3), stored
// row-major: the element (i, j, k) lives at data[(i*d2+j)*d3+k].
type Dense3 struct {
	d1, d2, d3 int
	data       []float64
}

// NewDense3 allocates a zeroed tensor with the given dimensions.
func NewDense3(d1, d2, d3 int) *Dense3 {
	if d1 <= 0 || d2 <= 0 || d3 <= 0 {
		panic("tensor: non-positive dimension")
	}
	return &Dense3{
		d1:   d1,
		d2:   d2,
		d3:   d3,
		data: make([]float64, d1*d2*d3),
	}
}

// Dims returns the dimensions of the tensor.
func (t *Dense3) Dims() (d1, d2, d3 int) {
	return t.d1, t.d2, t.d3
}

// At returns the element at (i, j, k).
func (t *Dense3) At(i, j, k int) float64 {
	t.check(i, j, k)
	return t.data[(i*t.d2+j)*t.d3+k]
}

// Set stores v at (i, j, k).
func (t *Dense3) Set(i, j, k int, v float64) {
	t.check(i, j, k)
	t.data[(i*t.d2+j)*t.d3+k] = v
}

// Slice returns the i-th d2×d3 matrix as a view sharing the tensor's backing
// array. Writes through the view are visible in the tensor.
func (t *Dense3) Slice(i int) *mat.Dense {
	if i < 0 || i >= t.d1 {
		panic("tensor: slice index out of range")
	}
	block := t.d2 * t.d3
	return mat.NewDense(t.d2, t.d3, t.data[i*block:(i+1)*block])
}

// Data returns the backing slice. The layout is row-major in (d1, d2, d3)
// order; mutating it mutates the tensor.
func (t *Dense3) Data() []float64 {
	return t.data
}

func (t *Dense3) check(i, j, k int) {
	if i < 0 || i >= t.d1 || j < 0 || j >= t.d2 || k < 0 || k >= t.d3 {
		panic("tensor: index out of range")
	}
}
