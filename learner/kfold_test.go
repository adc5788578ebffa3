package learner

import (
	"context"
	"errors"
	"testing"

	"github.com/drakos74/klearn/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMean() (CrossValidating, error) {
	return newMean(kernel.Linear{})
}

func TestKFold(t *testing.T) {

	b := Batch{
		X: [][]float64{{0}, {1}, {2}, {3}, {4}, {5}},
		Y: []float64{1, 1, 1, 1, 1, 1},
	}

	result, err := KFold(context.Background(), 3, b, buildMean)
	require.NoError(t, err)

	assert.Equal(t, 3, len(result.Folds))
	for _, s := range result.Folds {
		assert.Equal(t, 2, s.Samples)
		assert.Equal(t, 0.0, s.MSE)
	}
	assert.Equal(t, 6, result.Mean.Samples)
	assert.Equal(t, 0.0, result.Mean.RMSE)
}

func TestKFold_Scores(t *testing.T) {

	// the held out fold always differs by 3 from the mean of the rest
	b := Batch{
		X: [][]float64{{0}, {1}},
		Y: []float64{0, 3},
	}

	result, err := KFold(context.Background(), 2, b, buildMean)
	require.NoError(t, err)
	assert.Equal(t, 9.0, result.Mean.MSE)
	assert.Equal(t, 3.0, result.Mean.RMSE)
	assert.Equal(t, 3.0, result.Mean.MAE)
}

func TestKFold_Invalid(t *testing.T) {

	b := Batch{X: [][]float64{{0}, {1}}, Y: []float64{0, 1}}

	type test struct {
		folds int
		batch Batch
		err   error
	}

	tests := map[string]test{
		"one-fold":   {folds: 1, batch: b, err: ErrInvalidArgument},
		"too-many":   {folds: 3, batch: b, err: ErrInvalidArgument},
		"empty":      {folds: 2, err: ErrNoData},
		"no-targets": {folds: 2, batch: Batch{X: b.X}, err: ErrInvalidArgument},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := KFold(context.Background(), tt.folds, tt.batch, buildMean)
			assert.True(t, errors.Is(err, tt.err), "%v", err)
		})
	}
}

func TestKFold_Cancelled(t *testing.T) {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := Batch{X: [][]float64{{0}, {1}}, Y: []float64{0, 1}}
	_, err := KFold(ctx, 2, b, buildMean)
	assert.True(t, errors.Is(err, context.Canceled))
}
