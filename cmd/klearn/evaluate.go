package main

import (
	"fmt"

	"github.com/drakos74/klearn/learner"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a persisted learner on labelled samples",
	Long: `Evaluate restores the named learner and scores it against a csv file
whose last column holds the target values.

Examples:
  klearn evaluate --config krr.json --name houses --data test.csv`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&dataPath, "data", "", "csv file with the labelled samples")
	evaluateCmd.Flags().StringVar(&modelName, "name", "", "name of the persisted learner")
	_ = evaluateCmd.MarkFlagRequired("data")
	_ = evaluateCmd.MarkFlagRequired("name")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	l, err := restore(modelName)
	if err != nil {
		return err
	}
	cv, ok := l.(learner.CrossValidating)
	if !ok {
		return fmt.Errorf("'%s' can not be evaluated: %w", modelName, learner.ErrNotImplemented)
	}
	batch, err := readBatch(dataPath, true)
	if err != nil {
		return err
	}
	score, err := cv.Evaluate(batch)
	if err != nil {
		return err
	}
	printScore(cmd.OutOrStdout(), score)
	return nil
}
