package math

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// residuals returns predicted - actual.
func residuals(actual, predicted []float64) []float64 {
	r := append([]float64(nil), predicted...)
	floats.Sub(r, actual)
	return r
}

// MSE returns the mean squared error of the predictions.
func MSE(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	n := floats.Norm(residuals(actual, predicted), 2)
	return n * n / float64(len(actual))
}

// MAE returns the mean absolute error of the predictions.
func MAE(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	return floats.Norm(residuals(actual, predicted), 1) / float64(len(actual))
}

// RMSE returns the root of the mean squared error.
func RMSE(actual, predicted []float64) float64 {
	return math.Sqrt(MSE(actual, predicted))
}

// R2 returns the coefficient of determination.
// NOTE : a constant target gives 0, as the total variance is zero.
func R2(actual, predicted []float64) float64 {
	if len(actual) < 2 {
		return 0
	}
	if stat.Variance(actual, nil) == 0 {
		return 0
	}
	return stat.RSquaredFrom(predicted, actual, nil)
}
