package kernel

import "sort"

// Constructor builds a kernel from a variance and per-dimension length
// scales.
type Constructor func(variance float64, lengthscales []float64) Kernel

// Registry maps kernel names to their constructors.
var Registry = map[string]Constructor{
	"sqexp":    newSqExp,
	"rbf":      newSqExp,
	"gaussian": newSqExp,

	"matern12":    newMatern12,
	"exponential": newMatern12,
	"matern32":    newMatern32,
	"matern52":    newMatern52,
}

// New builds a named kernel. The second return value reports whether the
// name is registered.
func New(name string, variance float64, lengthscales []float64) (Kernel, bool) {
	ctor, ok := Registry[name]
	if !ok {
		return nil, false
	}
	return ctor(variance, lengthscales), true
}

// Names returns the registered kernel names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newSqExp(v float64, l []float64) Kernel    { return SqExp{Variance: v, Lengthscales: l} }
func newMatern12(v float64, l []float64) Kernel { return Matern12{Variance: v, Lengthscales: l} }
func newMatern32(v float64, l []float64) Kernel { return Matern32{Variance: v, Lengthscales: l} }
func newMatern52(v float64, l []float64) Kernel { return Matern52{Variance: v, Lengthscales: l} }
