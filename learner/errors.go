package learner

import "errors"

var (
	// ErrType is returned when a learner is constructed without a kernel.
	ErrType = errors.New("kernel must implement kernel.Kernel")
	// ErrNotImplemented is returned by operations the learner does not provide.
	ErrNotImplemented = errors.New("not implemented")
	// ErrNotSolved is returned when the solution is needed before Solve.
	ErrNotSolved = errors.New("learner not solved")
	// ErrNoData is returned when there is no training data to work with.
	ErrNoData = errors.New("no training data")
	// ErrDimension is returned for samples of unexpected dimension.
	ErrDimension = errors.New("dimension mismatch")
	// ErrInvalidArgument is returned for invalid parameters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSingular is returned when the solver cannot factorize the system.
	ErrSingular = errors.New("singular system")
)
