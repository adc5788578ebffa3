package learner

import (
	"fmt"
	"io"
	"reflect"

	"github.com/drakos74/klearn/kernel"
)

// Base holds the kernel of a learner. Concrete learners embed it.
type Base struct {
	kernel kernel.Kernel
}

// NewBase creates the base of a learner for the given kernel.
// A nil kernel, typed or not, fails with ErrType.
func NewBase(k kernel.Kernel) (Base, error) {
	if isNil(k) {
		return Base{}, fmt.Errorf("could not create learner: %w", ErrType)
	}
	return Base{kernel: k}, nil
}

// Kernel returns the kernel the learner was created with.
func (b Base) Kernel() kernel.Kernel {
	return b.kernel
}

func isNil(k kernel.Kernel) bool {
	if k == nil {
		return true
	}
	v := reflect.ValueOf(k)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}

// Unimplemented can be embedded by learners to get ErrNotImplemented
// for every operation they do not override.
type Unimplemented struct{}

func (Unimplemented) AddTrainingData(Batch) error {
	return fmt.Errorf("add training data: %w", ErrNotImplemented)
}

func (Unimplemented) Solve() error {
	return fmt.Errorf("solve: %w", ErrNotImplemented)
}

func (Unimplemented) Save(io.Writer) error {
	return fmt.Errorf("save: %w", ErrNotImplemented)
}

func (Unimplemented) Evaluate(Batch) (Score, error) {
	return Score{}, fmt.Errorf("evaluate: %w", ErrNotImplemented)
}

func (Unimplemented) Project([][]float64, int) ([][]float64, error) {
	return nil, fmt.Errorf("project: %w", ErrNotImplemented)
}
