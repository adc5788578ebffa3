package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/drakos74/klearn/learner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBatch(t *testing.T) {

	type test struct {
		csv    string
		target bool
		batch  learner.Batch
		err    error
	}

	tests := map[string]test{
		"features": {
			csv: "1,2\n3,4\n",
			batch: learner.Batch{
				X: [][]float64{{1, 2}, {3, 4}},
			},
		},
		"header-and-target": {
			csv:    "x1, x2, y\n1, 2, 3\n4, 5, 6\n",
			target: true,
			batch: learner.Batch{
				X: [][]float64{{1, 2}, {4, 5}},
				Y: []float64{3, 6},
			},
		},
		"comments": {
			csv: "# samples\n1\n2\n",
			batch: learner.Batch{
				X: [][]float64{{1}, {2}},
			},
		},
		"invalid-value": {
			csv: "1,2\n3,x\n",
			err: learner.ErrInvalidArgument,
		},
		"target-only": {
			csv:    "1\n2\n",
			target: true,
			err:    learner.ErrDimension,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			batch, err := parseBatch(strings.NewReader(tt.csv), tt.target)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.batch, batch)
		})
	}
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	err := writeRows(&buf, [][]float64{{1, -0.5}, {0.25, 2}})
	require.NoError(t, err)
	assert.Equal(t, "1.000000,-0.500000\n0.250000,2.000000\n", buf.String())
}
