package learner

import (
	"errors"
	"fmt"

	kmath "github.com/drakos74/klearn/internal/math"
)

// Batch is a batch of samples.
// X holds one sample per row, Y optionally holds one target per sample.
type Batch struct {
	X [][]float64
	Y []float64
}

// Len returns the number of samples.
func (b Batch) Len() int {
	return len(b.X)
}

// Supervised reports if the batch carries targets.
func (b Batch) Supervised() bool {
	return len(b.Y) > 0
}

// Dim validates the batch and returns the sample dimension.
func (b Batch) Dim() (int, error) {
	d, err := kmath.Dimension(b.X)
	if err != nil {
		if errors.Is(err, kmath.EmptyErr) {
			return 0, fmt.Errorf("empty batch: %w", ErrNoData)
		}
		return 0, fmt.Errorf("%v: %w", err, ErrDimension)
	}
	if b.Supervised() && len(b.Y) != len(b.X) {
		return 0, fmt.Errorf("%d targets for %d samples: %w", len(b.Y), len(b.X), ErrInvalidArgument)
	}
	return d, nil
}

// Slice returns the samples in [from, to).
func (b Batch) Slice(from, to int) Batch {
	s := Batch{X: b.X[from:to]}
	if b.Supervised() {
		s.Y = b.Y[from:to]
	}
	return s
}

// Without returns the batch without the samples in [from, to).
func (b Batch) Without(from, to int) Batch {
	s := Batch{X: make([][]float64, 0, b.Len()-(to-from))}
	s.X = append(append(s.X, b.X[:from]...), b.X[to:]...)
	if b.Supervised() {
		s.Y = make([]float64, 0, len(s.X))
		s.Y = append(append(s.Y, b.Y[:from]...), b.Y[to:]...)
	}
	return s
}
