// Package learner defines the capability contract of the kernel learners.
//
// Every learner satisfies Learner: it is built around exactly one kernel,
// accumulates training data, is solved once and can be saved and loaded back.
// A learner may additionally be CrossValidating, Projecting, both or neither.
package learner

import (
	"io"

	"github.com/drakos74/klearn/kernel"
)

// DefaultProjections is the number of solution vectors Project is called with by default.
const DefaultProjections = 10

// Learner is the minimal operation set of any trainable kernel model.
type Learner interface {
	// Kernel returns the kernel the learner was constructed with.
	Kernel() kernel.Kernel
	// AddTrainingData adds a batch of training samples.
	// It can be called multiple times before Solve,
	// it is up to the learner to compute on the fly or defer to Solve.
	AddTrainingData(batch Batch) error
	// Solve computes the solution from all the training data added so far.
	Solve() error
	// Save writes the solution in a form Load can restore.
	Save(w io.Writer) error
}

// CrossValidating learners can score new data against their solution.
type CrossValidating interface {
	Learner
	// Evaluate scores the batch against the solution without changing it.
	Evaluate(batch Batch) (Score, error)
}

// Projecting learners transform data onto their solution vectors.
type Projecting interface {
	Learner
	// Project expresses every sample of x in terms of up to numVectors solution vectors.
	Project(x [][]float64, numVectors int) ([][]float64, error)
}

// ProjectDefault projects onto DefaultProjections solution vectors.
func ProjectDefault(p Projecting, x [][]float64) ([][]float64, error) {
	return p.Project(x, DefaultProjections)
}

// Score is the outcome of an evaluation.
type Score struct {
	Samples int     `json:"samples"`
	MSE     float64 `json:"mse"`
	RMSE    float64 `json:"rmse"`
	MAE     float64 `json:"mae"`
	R2      float64 `json:"r2"`
}
