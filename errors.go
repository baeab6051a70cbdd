package rff

import "errors"

// Sentinel errors returned (wrapped, with detail) by constructors and
// evaluators. Match with errors.Is.
var (
	// ErrInvalidArgument reports a non-positive feature, sample, or kernel
	// dimension count.
	ErrInvalidArgument = errors.New("rff: invalid argument")

	// ErrShapeMismatch reports a caller tensor that does not match the
	// declared input dimension or feature layout.
	ErrShapeMismatch = errors.New("rff: shape mismatch")

	// ErrUnsupportedKernel reports gradient-mode evaluation requested for a
	// kernel whose output dimension is not 1.
	ErrUnsupportedKernel = errors.New("rff: unsupported kernel")
)
