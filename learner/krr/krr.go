// Package krr implements kernel ridge regression.
package krr

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	kmath "github.com/drakos74/klearn/internal/math"
	"github.com/drakos74/klearn/internal/metrics"
	"github.com/drakos74/klearn/kernel"
	"github.com/drakos74/klearn/learner"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// Type is the learner type of the kernel ridge regression.
const Type = "krr"

// DefaultLambda is the default regularisation.
const DefaultLambda = 1e-3

func init() {
	learner.Register(Type, func(k kernel.Kernel, payload json.RawMessage) (learner.Learner, error) {
		return load(k, payload)
	})
}

// Option configures the regression.
type Option func(r *KRR)

// WithLambda sets the ridge regularisation, it must be positive.
func WithLambda(lambda float64) Option {
	return func(r *KRR) {
		r.lambda = lambda
	}
}

// KRR fits y = sum(alpha_i * k(x_i, x)) by solving (K + lambda*I) alpha = y.
type KRR struct {
	learner.Base
	lambda   float64
	dim      int
	x        [][]float64
	y        []float64
	solution *solution
}

type solution struct {
	X      [][]float64 `json:"x"`
	Y      []float64   `json:"y"`
	Alpha  []float64   `json:"alpha"`
	Lambda float64     `json:"lambda"`
}

// New creates a new kernel ridge regression for the given kernel.
func New(k kernel.Kernel, opts ...Option) (*KRR, error) {
	b, err := learner.NewBase(k)
	if err != nil {
		return nil, err
	}
	r := &KRR{
		Base:   b,
		lambda: DefaultLambda,
		x:      make([][]float64, 0),
		y:      make([]float64, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.lambda <= 0 {
		return nil, fmt.Errorf("lambda %f: %w", r.lambda, learner.ErrInvalidArgument)
	}
	return r, nil
}

// AddTrainingData accumulates the samples and their targets for the next Solve.
func (r *KRR) AddTrainingData(batch learner.Batch) error {
	err := r.add(batch)
	metrics.Observer.Track(Type, "add", err)
	return err
}

func (r *KRR) add(batch learner.Batch) error {
	d, err := r.validate(batch, r.trained())
	if err != nil {
		return err
	}
	r.dim = d
	r.x = append(r.x, kmath.Copy(batch.X)...)
	r.y = append(r.y, batch.Y...)
	return nil
}

// trained reports if the sample dimension is already fixed.
func (r *KRR) trained() bool {
	return len(r.x) > 0 || r.solution != nil
}

func (r *KRR) validate(batch learner.Batch, checkDim bool) (int, error) {
	d, err := batch.Dim()
	if err != nil {
		return 0, err
	}
	if !batch.Supervised() {
		return 0, fmt.Errorf("%s needs targets: %w", Type, learner.ErrInvalidArgument)
	}
	if checkDim && d != r.dim {
		return 0, fmt.Errorf("samples of dimension %d, expected %d: %w", d, r.dim, learner.ErrDimension)
	}
	return d, nil
}

// Solve computes the dual coefficients from all the samples added so far.
func (r *KRR) Solve() error {
	start := time.Now()
	err := r.solve()
	metrics.Observer.Track(Type, "solve", err)
	if err != nil {
		return err
	}
	metrics.Observer.Solved(Type, len(r.x), time.Since(start))
	log.Info().
		Str("learner", Type).
		Str("kernel", r.Kernel().Spec().String()).
		Int("samples", len(r.x)).
		Float64("lambda", r.lambda).
		Dur("duration", time.Since(start)).
		Msg("solved")
	return nil
}

func (r *KRR) solve() error {
	n := len(r.x)
	if n == 0 {
		return fmt.Errorf("solve %s: %w", Type, learner.ErrNoData)
	}

	gram := kernel.Gram(r.Kernel(), r.x)
	for i := 0; i < n; i++ {
		gram.SetSym(i, i, gram.At(i, i)+r.lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return fmt.Errorf("kernel matrix is not positive definite: %w", learner.ErrSingular)
	}

	alpha := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(alpha, mat.NewVecDense(n, append([]float64(nil), r.y...))); err != nil {
		return fmt.Errorf("%v: %w", err, learner.ErrSingular)
	}

	r.solution = &solution{
		X:      r.x,
		Y:      r.y,
		Alpha:  append([]float64(nil), alpha.RawVector().Data...),
		Lambda: r.lambda,
	}
	return nil
}

// Predict returns the regression output for every sample.
func (r *KRR) Predict(x [][]float64) ([]float64, error) {
	if r.solution == nil {
		return nil, fmt.Errorf("predict: %w", learner.ErrNotSolved)
	}
	d, err := learner.Batch{X: x}.Dim()
	if err != nil {
		return nil, err
	}
	if d != r.dim {
		return nil, fmt.Errorf("samples of dimension %d, expected %d: %w", d, r.dim, learner.ErrDimension)
	}
	s := r.solution
	cross := kernel.Cross(r.Kernel(), x, s.X)
	predictions := mat.NewVecDense(len(x), nil)
	predictions.MulVec(cross, mat.NewVecDense(len(s.Alpha), s.Alpha))
	return predictions.RawVector().Data, nil
}

// Evaluate scores the predictions for the batch samples against the batch targets.
func (r *KRR) Evaluate(batch learner.Batch) (learner.Score, error) {
	score, err := r.evaluate(batch)
	metrics.Observer.Track(Type, "evaluate", err)
	return score, err
}

func (r *KRR) evaluate(batch learner.Batch) (learner.Score, error) {
	if r.solution == nil {
		return learner.Score{}, fmt.Errorf("evaluate: %w", learner.ErrNotSolved)
	}
	if _, err := r.validate(batch, true); err != nil {
		return learner.Score{}, err
	}
	predicted, err := r.Predict(batch.X)
	if err != nil {
		return learner.Score{}, err
	}
	return learner.Score{
		Samples: batch.Len(),
		MSE:     kmath.MSE(batch.Y, predicted),
		RMSE:    kmath.RMSE(batch.Y, predicted),
		MAE:     kmath.MAE(batch.Y, predicted),
		R2:      kmath.R2(batch.Y, predicted),
	}, nil
}

// Lambda returns the regularisation.
func (r *KRR) Lambda() float64 {
	return r.lambda
}

// Save writes the solution.
func (r *KRR) Save(w io.Writer) error {
	err := r.save(w)
	metrics.Observer.Track(Type, "save", err)
	return err
}

func (r *KRR) save(w io.Writer) error {
	if r.solution == nil {
		return fmt.Errorf("save: %w", learner.ErrNotSolved)
	}
	return learner.WriteSnapshot(w, Type, r.Kernel(), r.solution)
}

func load(k kernel.Kernel, payload json.RawMessage) (*KRR, error) {
	var s solution
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("could not decode solution: %w", err)
	}
	if len(s.X) == 0 || len(s.Alpha) != len(s.X) || len(s.Y) != len(s.X) {
		return nil, fmt.Errorf("inconsistent solution: %w", learner.ErrInvalidArgument)
	}
	d, err := learner.Batch{X: s.X}.Dim()
	if err != nil {
		return nil, err
	}
	r, err := New(k, WithLambda(s.Lambda))
	if err != nil {
		return nil, err
	}
	r.dim = d
	r.x = s.X
	r.y = s.Y
	r.solution = &s
	metrics.Observer.Track(Type, "load", nil)
	return r, nil
}
