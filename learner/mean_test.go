package learner

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/drakos74/klearn/kernel"
	kmath "github.com/drakos74/klearn/internal/math"
)

const meanType = "mean"

func init() {
	Register(meanType, func(k kernel.Kernel, payload json.RawMessage) (Learner, error) {
		l, err := newMean(k)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &l.Mean); err != nil {
			return nil, err
		}
		l.solved = true
		return l, nil
	})
}

// mean predicts the mean target of its training data, whatever the sample.
type mean struct {
	Base
	Unimplemented
	y      []float64
	Mean   float64
	solved bool
}

func newMean(k kernel.Kernel) (*mean, error) {
	b, err := NewBase(k)
	if err != nil {
		return nil, err
	}
	return &mean{Base: b}, nil
}

func (m *mean) AddTrainingData(batch Batch) error {
	if _, err := batch.Dim(); err != nil {
		return err
	}
	if !batch.Supervised() {
		return fmt.Errorf("targets missing: %w", ErrInvalidArgument)
	}
	m.y = append(m.y, batch.Y...)
	return nil
}

func (m *mean) Solve() error {
	if len(m.y) == 0 {
		return ErrNoData
	}
	s := 0.0
	for _, y := range m.y {
		s += y
	}
	m.Mean = s / float64(len(m.y))
	m.solved = true
	return nil
}

func (m *mean) Save(w io.Writer) error {
	if !m.solved {
		return ErrNotSolved
	}
	return WriteSnapshot(w, meanType, m.Kernel(), m.Mean)
}

func (m *mean) Evaluate(batch Batch) (Score, error) {
	if !m.solved {
		return Score{}, ErrNotSolved
	}
	predicted := make([]float64, batch.Len())
	for i := range predicted {
		predicted[i] = m.Mean
	}
	return Score{
		Samples: batch.Len(),
		MSE:     kmath.MSE(batch.Y, predicted),
		RMSE:    kmath.RMSE(batch.Y, predicted),
		MAE:     kmath.MAE(batch.Y, predicted),
		R2:      kmath.R2(batch.Y, predicted),
	}, nil
}
