package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/drakos74/klearn/learner"
)

// readBatch reads the csv file at path into a batch.
func readBatch(path string, target bool) (learner.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return learner.Batch{}, fmt.Errorf("could not open data '%s': %w", path, err)
	}
	defer f.Close()
	return parseBatch(f, target)
}

// parseBatch parses numeric csv records, the last column is the target if requested.
// A first record that does not parse is treated as a header.
func parseBatch(r io.Reader, target bool) (learner.Batch, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return learner.Batch{}, fmt.Errorf("could not read csv: %w", err)
	}

	var batch learner.Batch
	for i, record := range records {
		row, err := parseRow(record)
		if err != nil {
			if i == 0 {
				continue
			}
			return learner.Batch{}, fmt.Errorf("record %d: %v: %w", i, err, learner.ErrInvalidArgument)
		}
		if target {
			if len(row) < 2 {
				return learner.Batch{}, fmt.Errorf("record %d has no features: %w", i, learner.ErrDimension)
			}
			batch.Y = append(batch.Y, row[len(row)-1])
			row = row[:len(row)-1]
		}
		batch.X = append(batch.X, row)
	}
	return batch, nil
}

func parseRow(record []string) ([]float64, error) {
	row := make([]float64, len(record))
	for j, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		row[j] = v
	}
	return row, nil
}

// writeRows writes the rows as csv.
func writeRows(w io.Writer, rows [][]float64) error {
	writer := csv.NewWriter(w)
	for _, row := range rows {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func printScore(w io.Writer, score learner.Score) {
	fmt.Fprintf(w, "samples=%d mse=%.6f rmse=%.6f mae=%.6f r2=%.6f\n",
		score.Samples, score.MSE, score.RMSE, score.MAE, score.R2)
}
