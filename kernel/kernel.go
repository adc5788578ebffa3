// Package kernel defines the similarity functions learners are built on.
package kernel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	LinearType     = "linear"
	PolynomialType = "polynomial"
	GaussianType   = "gaussian"
	RBFType        = "rbf"
	SigmoidType    = "sigmoid"
)

var (
	ErrUnknownKernel = errors.New("unknown kernel")
	ErrInvalidParams = errors.New("invalid kernel parameters")
)

// Kernel produces the similarity (inner product in feature space) between two samples.
type Kernel interface {
	Eval(x, y []float64) float64
	// Spec returns the serialisable identity of the kernel.
	Spec() Spec
}

// Spec describes a kernel and its parameters.
type Spec struct {
	Type   string  `json:"type"`
	Degree int     `json:"degree,omitempty"`
	Gamma  float64 `json:"gamma,omitempty"`
	Coef0  float64 `json:"coef0,omitempty"`
	Sigma  float64 `json:"sigma,omitempty"`
}

func (s Spec) String() string {
	return fmt.Sprintf("%s[degree:%d|gamma:%.3f|coef0:%.3f|sigma:%.3f]", s.Type, s.Degree, s.Gamma, s.Coef0, s.Sigma)
}

// New creates the kernel described by the given Spec.
// Parameters are taken as they are, New(k.Spec()) rebuilds k.
func New(spec Spec) (Kernel, error) {
	switch spec.Type {
	case LinearType:
		return Linear{}, nil
	case PolynomialType:
		if spec.Degree < 1 {
			return nil, fmt.Errorf("polynomial degree %d: %w", spec.Degree, ErrInvalidParams)
		}
		return Polynomial{Degree: spec.Degree, Gamma: spec.Gamma, Coef0: spec.Coef0}, nil
	case GaussianType, RBFType:
		if spec.Sigma <= 0 {
			return nil, fmt.Errorf("gaussian sigma %f: %w", spec.Sigma, ErrInvalidParams)
		}
		return Gaussian{Sigma: spec.Sigma}, nil
	case SigmoidType:
		return Sigmoid{Gamma: spec.Gamma, Coef0: spec.Coef0}, nil
	}
	return nil, fmt.Errorf("'%s': %w", spec.Type, ErrUnknownKernel)
}

// Validate checks that the kernel can be rebuilt from its Spec.
func Validate(k Kernel) error {
	_, err := New(k.Spec())
	return err
}

// Linear is the plain inner product.
type Linear struct{}

func (Linear) Eval(x, y []float64) float64 {
	return floats.Dot(x, y)
}

func (Linear) Spec() Spec {
	return Spec{Type: LinearType}
}

// Polynomial computes (gamma * x.y + coef0)^degree
type Polynomial struct {
	Degree int
	Gamma  float64
	Coef0  float64
}

func (p Polynomial) Eval(x, y []float64) float64 {
	return math.Pow(p.Gamma*floats.Dot(x, y)+p.Coef0, float64(p.Degree))
}

func (p Polynomial) Spec() Spec {
	return Spec{Type: PolynomialType, Degree: p.Degree, Gamma: p.Gamma, Coef0: p.Coef0}
}

// Gaussian is the radial basis function exp(-|x-y|^2 / 2 sigma^2)
type Gaussian struct {
	Sigma float64
}

func (g Gaussian) Eval(x, y []float64) float64 {
	d := floats.Distance(x, y, 2)
	return math.Exp(-d * d / (2 * g.Sigma * g.Sigma))
}

func (g Gaussian) Spec() Spec {
	return Spec{Type: GaussianType, Sigma: g.Sigma}
}

// Sigmoid computes tanh(gamma * x.y + coef0)
// NOTE : it is not positive semi-definite for all parameters.
type Sigmoid struct {
	Gamma float64
	Coef0 float64
}

func (s Sigmoid) Eval(x, y []float64) float64 {
	return math.Tanh(s.Gamma*floats.Dot(x, y) + s.Coef0)
}

func (s Sigmoid) Spec() Spec {
	return Spec{Type: SigmoidType, Gamma: s.Gamma, Coef0: s.Coef0}
}
