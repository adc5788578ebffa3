package krr

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/drakos74/klearn/kernel"
	"github.com/drakos74/klearn/learner"
	"github.com/drakos74/klearn/storage/diskv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plane samples y = 2*x0 - x1 + 3 on a grid
func plane() learner.Batch {
	b := learner.Batch{}
	for i := 0.0; i < 5; i++ {
		for j := 0.0; j < 5; j++ {
			b.X = append(b.X, []float64{i, j})
			b.Y = append(b.Y, 2*i-j+3)
		}
	}
	return b
}

// sine samples y = sin(x) on [0, 2pi)
func sine(n int) learner.Batch {
	b := learner.Batch{}
	for i := 0; i < n; i++ {
		x := 2 * math.Pi * float64(i) / float64(n)
		b.X = append(b.X, []float64{x})
		b.Y = append(b.Y, math.Sin(x))
	}
	return b
}

func TestKRR_Linear(t *testing.T) {

	// the affine term comes with the polynomial kernel of degree 1
	krr, err := New(kernel.Polynomial{Degree: 1, Gamma: 1, Coef0: 1}, WithLambda(1e-8))
	require.NoError(t, err)

	require.NoError(t, krr.AddTrainingData(plane()))
	require.NoError(t, krr.Solve())

	predictions, err := krr.Predict([][]float64{{10, 10}, {-1, 2}})
	require.NoError(t, err)
	assert.InDelta(t, 13, predictions[0], 1e-3)
	assert.InDelta(t, -1, predictions[1], 1e-3)

	score, err := krr.Evaluate(plane())
	require.NoError(t, err)
	assert.Equal(t, 25, score.Samples)
	assert.InDelta(t, 1, score.R2, 1e-6)
	assert.InDelta(t, 0, score.RMSE, 1e-3)
}

func TestKRR_Gaussian(t *testing.T) {

	krr, err := New(kernel.Gaussian{Sigma: 1}, WithLambda(1e-6))
	require.NoError(t, err)

	train := sine(40)
	require.NoError(t, krr.AddTrainingData(train.Slice(0, 20)))
	require.NoError(t, krr.AddTrainingData(train.Slice(20, 40)))
	require.NoError(t, krr.Solve())

	test := learner.Batch{
		X: [][]float64{{1}, {2}, {4}},
		Y: []float64{math.Sin(1), math.Sin(2), math.Sin(4)},
	}
	score, err := krr.Evaluate(test)
	require.NoError(t, err)
	assert.True(t, score.RMSE < 1e-2, "rmse %f", score.RMSE)
	assert.True(t, score.R2 > 0.99, "r2 %f", score.R2)
}

func TestKRR_EvaluateKeepsSolution(t *testing.T) {

	krr, err := New(kernel.Linear{})
	require.NoError(t, err)
	require.NoError(t, krr.AddTrainingData(learner.Batch{X: [][]float64{{1}, {2}}, Y: []float64{1, 2}}))
	require.NoError(t, krr.Solve())

	before, err := krr.Predict([][]float64{{3}})
	require.NoError(t, err)

	_, err = krr.Evaluate(learner.Batch{X: [][]float64{{5}, {6}}, Y: []float64{100, -100}})
	require.NoError(t, err)

	after, err := krr.Predict([][]float64{{3}})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestKRR_Errors(t *testing.T) {

	_, err := New(nil)
	assert.True(t, errors.Is(err, learner.ErrType))

	_, err = New(kernel.Linear{}, WithLambda(0))
	assert.True(t, errors.Is(err, learner.ErrInvalidArgument))

	krr, err := New(kernel.Linear{})
	require.NoError(t, err)

	assert.True(t, errors.Is(krr.Solve(), learner.ErrNoData))
	assert.True(t, errors.Is(krr.Save(new(bytes.Buffer)), learner.ErrNotSolved))

	_, err = krr.Evaluate(plane())
	assert.True(t, errors.Is(err, learner.ErrNotSolved))
	_, err = krr.Predict([][]float64{{1, 1}})
	assert.True(t, errors.Is(err, learner.ErrNotSolved))

	err = krr.AddTrainingData(learner.Batch{X: [][]float64{{1, 1}}})
	assert.True(t, errors.Is(err, learner.ErrInvalidArgument))

	require.NoError(t, krr.AddTrainingData(plane()))
	err = krr.AddTrainingData(learner.Batch{X: [][]float64{{1}}, Y: []float64{1}})
	assert.True(t, errors.Is(err, learner.ErrDimension))

	require.NoError(t, krr.Solve())
	_, err = krr.Evaluate(learner.Batch{X: [][]float64{{1}}, Y: []float64{1}})
	assert.True(t, errors.Is(err, learner.ErrDimension))
	_, err = krr.Evaluate(learner.Batch{X: [][]float64{{1, 1}}})
	assert.True(t, errors.Is(err, learner.ErrInvalidArgument))
}

func TestKRR_SaveLoad(t *testing.T) {

	krr, err := New(kernel.Gaussian{Sigma: 0.8}, WithLambda(0.01))
	require.NoError(t, err)
	require.NoError(t, krr.AddTrainingData(sine(30)))
	require.NoError(t, krr.Solve())

	var buf bytes.Buffer
	require.NoError(t, krr.Save(&buf))

	loaded, err := learner.Load(&buf)
	require.NoError(t, err)

	restored, ok := loaded.(*KRR)
	require.True(t, ok)
	assert.Equal(t, 0.01, restored.Lambda())

	x := [][]float64{{0.5}, {1.5}, {3}}
	p1, err := krr.Predict(x)
	require.NoError(t, err)
	p2, err := restored.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	_, isProjecting := loaded.(learner.Projecting)
	assert.False(t, isProjecting)
}

func TestKRR_PersistDiskv(t *testing.T) {

	krr, err := New(kernel.Linear{})
	require.NoError(t, err)
	require.NoError(t, krr.AddTrainingData(plane()))
	require.NoError(t, krr.Solve())

	store := diskv.New(t.TempDir())
	key := storageKey()
	require.NoError(t, learner.Persist(store, key, krr))

	restored, err := learner.Restore(store, key)
	require.NoError(t, err)

	cv, ok := restored.(learner.CrossValidating)
	require.True(t, ok)

	s1, err := krr.Evaluate(plane())
	require.NoError(t, err)
	s2, err := cv.Evaluate(plane())
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestKRR_KFold(t *testing.T) {

	build := func() (learner.CrossValidating, error) {
		return New(kernel.Polynomial{Degree: 1, Gamma: 1, Coef0: 1}, WithLambda(1e-8))
	}

	result, err := learner.KFold(context.Background(), 5, plane(), build)
	require.NoError(t, err)

	assert.Equal(t, 5, len(result.Folds))
	assert.Equal(t, 25, result.Mean.Samples)
	assert.InDelta(t, 0, result.Mean.RMSE, 1e-3)
}

func saveLoad(t *testing.T, krr *KRR) *KRR {
	var buf bytes.Buffer
	require.NoError(t, krr.Save(&buf))
	loaded, err := learner.Load(&buf)
	require.NoError(t, err)
	restored, ok := loaded.(*KRR)
	require.True(t, ok)
	return restored
}

func TestKRR_LoadKeepsDimension(t *testing.T) {

	krr, err := New(kernel.Linear{})
	require.NoError(t, err)
	require.NoError(t, krr.AddTrainingData(learner.Batch{X: [][]float64{{1}, {2}}, Y: []float64{2, 4}}))
	require.NoError(t, krr.Solve())

	restored := saveLoad(t, krr)

	err = restored.AddTrainingData(learner.Batch{X: [][]float64{{1, 2, 3}}, Y: []float64{1}})
	assert.True(t, errors.Is(err, learner.ErrDimension))

	_, err = restored.Predict([][]float64{{1, 2, 3}})
	assert.True(t, errors.Is(err, learner.ErrDimension))

	_, err = restored.Evaluate(learner.Batch{X: [][]float64{{1, 2, 3}}, Y: []float64{1}})
	assert.True(t, errors.Is(err, learner.ErrDimension))
}

func TestKRR_LoadThenTrain(t *testing.T) {

	train := sine(30)

	fresh, err := New(kernel.Gaussian{Sigma: 0.8}, WithLambda(0.01))
	require.NoError(t, err)
	require.NoError(t, fresh.AddTrainingData(train.Slice(0, 20)))
	require.NoError(t, fresh.Solve())

	restored := saveLoad(t, fresh)

	// both learners continue from the same 20 samples
	require.NoError(t, fresh.AddTrainingData(train.Slice(20, 30)))
	require.NoError(t, fresh.Solve())
	require.NoError(t, restored.AddTrainingData(train.Slice(20, 30)))
	require.NoError(t, restored.Solve())

	assert.Equal(t, 30, len(restored.x))
	assert.Equal(t, 30, len(restored.y))

	x := [][]float64{{0.5}, {2.5}, {5}}
	p1, err := fresh.Predict(x)
	require.NoError(t, err)
	p2, err := restored.Predict(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, p1, p2, 1e-12)
}

func TestKRR_KernelRoundTrip(t *testing.T) {

	type test struct {
		kernel kernel.Kernel
		err    error
	}

	tests := map[string]test{
		"sigmoid-gamma-0": {
			kernel: kernel.Sigmoid{Coef0: 0.5},
		},
		"polynomial-gamma-0": {
			kernel: kernel.Polynomial{Degree: 2, Coef0: 1},
		},
		"polynomial-degree-0": {
			kernel: kernel.Polynomial{Gamma: 1},
			err:    kernel.ErrInvalidParams,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			krr, err := New(tt.kernel, WithLambda(0.1))
			require.NoError(t, err)
			require.NoError(t, krr.AddTrainingData(learner.Batch{
				X: [][]float64{{1}, {2}, {3}},
				Y: []float64{1, 2, 3},
			}))
			require.NoError(t, krr.Solve())

			if tt.err != nil {
				err := krr.Save(new(bytes.Buffer))
				assert.True(t, errors.Is(err, tt.err))
				return
			}

			restored := saveLoad(t, krr)
			assert.Equal(t, tt.kernel, restored.Kernel())

			p1, err := krr.Predict([][]float64{{4}})
			require.NoError(t, err)
			p2, err := restored.Predict([][]float64{{4}})
			require.NoError(t, err)
			assert.Equal(t, p1, p2)
		})
	}
}
