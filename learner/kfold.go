package learner

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/drakos74/klearn/internal/concurrent"
	"github.com/rs/zerolog/log"
)

// CVResult holds the scores of a k-fold cross validation.
type CVResult struct {
	// Folds are the held-out scores in fold order.
	Folds []Score `json:"folds"`
	// Mean is the sample weighted mean of the fold scores.
	Mean Score `json:"mean"`
}

// KFold runs a k-fold cross validation over the batch.
// Every fold is held out once, while a fresh learner from build is trained and solved on the rest.
// Folds are contiguous and run concurrently.
func KFold(ctx context.Context, folds int, batch Batch, build func() (CrossValidating, error)) (CVResult, error) {
	if _, err := batch.Dim(); err != nil {
		return CVResult{}, err
	}
	n := batch.Len()
	if folds < 2 || folds > n {
		return CVResult{}, fmt.Errorf("%d folds for %d samples: %w", folds, n, ErrInvalidArgument)
	}

	scores := make([]Score, folds)
	errs := make([]error, folds)

	wg := new(sync.WaitGroup)
	counter := concurrent.NewCounter(wg)
	sem := make(chan struct{}, concurrent.Workers())

	wg.Add(folds)
	for f := 0; f < folds; f++ {
		if err := ctx.Err(); err != nil {
			errs[f] = err
			counter.Track()
			continue
		}
		sem <- struct{}{}
		go func(f int) {
			defer func() { <-sem }()
			from, to := f*n/folds, (f+1)*n/folds
			scores[f], errs[f] = fold(batch, from, to, build)
			counter.Track()
		}(f)
	}
	wg.Wait()

	for f, err := range errs {
		if err != nil {
			return CVResult{}, fmt.Errorf("fold %d: %w", f, err)
		}
	}

	result := CVResult{
		Folds: scores,
		Mean:  meanScore(scores),
	}
	log.Info().
		Int("folds", counter.Get()).
		Int("samples", n).
		Float64("mse", result.Mean.MSE).
		Float64("r2", result.Mean.R2).
		Msg("cross validation")
	return result, nil
}

func fold(batch Batch, from, to int, build func() (CrossValidating, error)) (Score, error) {
	l, err := build()
	if err != nil {
		return Score{}, err
	}
	if err := l.AddTrainingData(batch.Without(from, to)); err != nil {
		return Score{}, err
	}
	if err := l.Solve(); err != nil {
		return Score{}, err
	}
	return l.Evaluate(batch.Slice(from, to))
}

func meanScore(scores []Score) Score {
	var m Score
	for _, s := range scores {
		w := float64(s.Samples)
		m.Samples += s.Samples
		m.MSE += w * s.MSE
		m.MAE += w * s.MAE
		m.R2 += w * s.R2
	}
	if m.Samples == 0 {
		return m
	}
	total := float64(m.Samples)
	m.MSE /= total
	m.MAE /= total
	m.R2 /= total
	m.RMSE = math.Sqrt(m.MSE)
	return m
}
