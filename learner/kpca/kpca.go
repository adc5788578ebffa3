// Package kpca implements kernel principal component analysis.
package kpca

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/drakos74/klearn/internal/concurrent"
	kmath "github.com/drakos74/klearn/internal/math"
	"github.com/drakos74/klearn/internal/metrics"
	"github.com/drakos74/klearn/kernel"
	"github.com/drakos74/klearn/learner"
	"github.com/rs/zerolog/log"
)

// Type is the learner type of the kernel pca.
const Type = "kpca"

// DefaultTolerance is the smallest eigenvalue kept as a component.
const DefaultTolerance = 1e-9

func init() {
	learner.Register(Type, func(k kernel.Kernel, payload json.RawMessage) (learner.Learner, error) {
		return load(k, payload)
	})
}

// Option configures the kernel pca.
type Option func(k *KPCA)

// WithMaxComponents caps the number of components kept by Solve.
// Zero keeps all components above the tolerance.
func WithMaxComponents(n int) Option {
	return func(k *KPCA) {
		k.maxComponents = n
	}
}

// WithTolerance sets the smallest eigenvalue kept as a component.
func WithTolerance(eps float64) Option {
	return func(k *KPCA) {
		k.tolerance = eps
	}
}

// KPCA projects samples onto the principal components of the training data in feature space.
type KPCA struct {
	learner.Base
	maxComponents int
	tolerance     float64
	dim           int
	x             [][]float64
	solution      *solution
}

// solution is the state needed to project new samples.
type solution struct {
	X             [][]float64 `json:"x"`
	Means         []float64   `json:"means"`
	Total         float64     `json:"total"`
	Eigenvalues   []float64   `json:"eigenvalues"`
	Alphas        [][]float64 `json:"alphas"`
	MaxComponents int         `json:"max_components"`
	Tolerance     float64     `json:"tolerance"`
}

// New creates a new kernel pca for the given kernel.
func New(k kernel.Kernel, opts ...Option) (*KPCA, error) {
	b, err := learner.NewBase(k)
	if err != nil {
		return nil, err
	}
	kpca := &KPCA{
		Base:      b,
		tolerance: DefaultTolerance,
		x:         make([][]float64, 0),
	}
	for _, opt := range opts {
		opt(kpca)
	}
	if kpca.maxComponents < 0 || kpca.tolerance < 0 {
		return nil, fmt.Errorf("components %d tolerance %f: %w", kpca.maxComponents, kpca.tolerance, learner.ErrInvalidArgument)
	}
	return kpca, nil
}

// AddTrainingData stores the samples for the next Solve.
// Targets, if any, are ignored.
func (k *KPCA) AddTrainingData(batch learner.Batch) error {
	err := k.add(batch)
	metrics.Observer.Track(Type, "add", err)
	return err
}

func (k *KPCA) add(batch learner.Batch) error {
	d, err := learner.Batch{X: batch.X}.Dim()
	if err != nil {
		return err
	}
	if (len(k.x) > 0 || k.solution != nil) && d != k.dim {
		return fmt.Errorf("samples of dimension %d, expected %d: %w", d, k.dim, learner.ErrDimension)
	}
	k.dim = d
	k.x = append(k.x, kmath.Copy(batch.X)...)
	return nil
}

// Solve computes the components from all the samples added so far.
func (k *KPCA) Solve() error {
	start := time.Now()
	err := k.solve()
	metrics.Observer.Track(Type, "solve", err)
	if err != nil {
		return err
	}
	metrics.Observer.Solved(Type, len(k.x), time.Since(start))
	log.Info().
		Str("learner", Type).
		Str("kernel", k.Kernel().Spec().String()).
		Int("samples", len(k.x)).
		Int("components", len(k.solution.Eigenvalues)).
		Dur("duration", time.Since(start)).
		Msg("solved")
	return nil
}

func (k *KPCA) solve() error {
	n := len(k.x)
	if n == 0 {
		return fmt.Errorf("solve %s: %w", Type, learner.ErrNoData)
	}

	gram := kernel.Gram(k.Kernel(), k.x)
	centered, means, total := kmath.CenterGram(gram)

	values, vectors, err := kmath.EigenSym(centered)
	if err != nil {
		return fmt.Errorf("%v: %w", err, learner.ErrSingular)
	}

	m := 0
	for _, v := range values {
		if v <= k.tolerance {
			break
		}
		if k.maxComponents > 0 && m == k.maxComponents {
			break
		}
		m++
	}
	if m == 0 {
		return fmt.Errorf("no component above tolerance %g: %w", k.tolerance, learner.ErrSingular)
	}
	if m < len(values) {
		log.Debug().
			Str("learner", Type).
			Int("kept", m).
			Int("dropped", len(values)-m).
			Msg("dropped components")
	}

	alphas := make([][]float64, n)
	for i := 0; i < n; i++ {
		alphas[i] = make([]float64, m)
		for c := 0; c < m; c++ {
			alphas[i][c] = vectors.At(i, c) / math.Sqrt(values[c])
		}
	}

	k.solution = &solution{
		X:             k.x,
		Means:         means,
		Total:         total,
		Eigenvalues:   append([]float64(nil), values[:m]...),
		Alphas:        alphas,
		MaxComponents: k.maxComponents,
		Tolerance:     k.tolerance,
	}
	return nil
}

// Project returns the coordinates of every sample on the first numVectors components.
// If fewer components were kept by Solve, all of them are used.
func (k *KPCA) Project(x [][]float64, numVectors int) ([][]float64, error) {
	projections, err := k.project(x, numVectors)
	metrics.Observer.Track(Type, "project", err)
	return projections, err
}

func (k *KPCA) project(x [][]float64, numVectors int) ([][]float64, error) {
	if numVectors <= 0 {
		return nil, fmt.Errorf("project onto %d vectors: %w", numVectors, learner.ErrInvalidArgument)
	}
	if k.solution == nil {
		return nil, fmt.Errorf("project: %w", learner.ErrNotSolved)
	}
	d, err := learner.Batch{X: x}.Dim()
	if err != nil {
		return nil, err
	}
	if d != k.dim {
		return nil, fmt.Errorf("samples of dimension %d, expected %d: %w", d, k.dim, learner.ErrDimension)
	}

	m := len(k.solution.Eigenvalues)
	if numVectors < m {
		m = numVectors
	}

	s := k.solution
	cross := kernel.Cross(k.Kernel(), x, s.X)
	projections := make([][]float64, len(x))
	concurrent.ForEach(len(x), concurrent.Workers(), func(i int) {
		row := kmath.CenterRow(cross.RawRowView(i), s.Means, s.Total)
		p := make([]float64, m)
		for c := 0; c < m; c++ {
			v := 0.0
			for j, r := range row {
				v += s.Alphas[j][c] * r
			}
			p[c] = v
		}
		projections[i] = p
	})
	return projections, nil
}

// Eigenvalues returns the eigenvalues of the kept components in descending order.
func (k *KPCA) Eigenvalues() []float64 {
	if k.solution == nil {
		return nil
	}
	return append([]float64(nil), k.solution.Eigenvalues...)
}

// Components returns the number of components kept by Solve.
func (k *KPCA) Components() int {
	if k.solution == nil {
		return 0
	}
	return len(k.solution.Eigenvalues)
}

// ExplainedVariance returns the share of the kept variance every component explains.
func (k *KPCA) ExplainedVariance() []float64 {
	values := k.Eigenvalues()
	total := 0.0
	for _, v := range values {
		total += v
	}
	ratios := make([]float64, len(values))
	for i, v := range values {
		ratios[i] = v / total
	}
	return ratios
}

// Save writes the solution.
func (k *KPCA) Save(w io.Writer) error {
	err := k.save(w)
	metrics.Observer.Track(Type, "save", err)
	return err
}

func (k *KPCA) save(w io.Writer) error {
	if k.solution == nil {
		return fmt.Errorf("save: %w", learner.ErrNotSolved)
	}
	return learner.WriteSnapshot(w, Type, k.Kernel(), k.solution)
}

func load(k kernel.Kernel, payload json.RawMessage) (*KPCA, error) {
	var s solution
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("could not decode solution: %w", err)
	}
	if len(s.X) == 0 || len(s.Alphas) != len(s.X) || len(s.Means) != len(s.X) {
		return nil, fmt.Errorf("inconsistent solution: %w", learner.ErrInvalidArgument)
	}
	d, err := learner.Batch{X: s.X}.Dim()
	if err != nil {
		return nil, err
	}
	kpca, err := New(k, WithMaxComponents(s.MaxComponents), WithTolerance(s.Tolerance))
	if err != nil {
		return nil, err
	}
	kpca.dim = d
	kpca.x = s.X
	kpca.solution = &s
	metrics.Observer.Track(Type, "load", nil)
	return kpca, nil
}
