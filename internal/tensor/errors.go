package tensor

import "errors"

// Every op wraps these with its own name, e.g. fmt.Errorf("gather: %w", ErrUnimplemented).
// Callers match them with errors.Is.
var (
	// ErrIncompatibleShapes is returned when two operands cannot be reconciled
	// under broadcasting rules. Messages carry both offending shapes.
	ErrIncompatibleShapes = errors.New("incompatible shapes")

	// ErrInvalidRank signals a structural precondition on rank was violated.
	ErrInvalidRank = errors.New("invalid rank")

	// ErrInvalidArgument covers out-of-range axes, bad sizes and similar misuse.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnimplemented marks a documented TensorFlow option this backend does not support.
	ErrUnimplemented = errors.New("not implemented")

	// ErrNotSquare is returned by ops that need square trailing matrices.
	ErrNotSquare = errors.New("matrix is not square")

	// ErrNotPositiveDefinite is returned when a Cholesky factorization fails.
	ErrNotPositiveDefinite = errors.New("matrix is not positive definite")
)
