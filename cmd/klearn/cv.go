package main

import (
	"fmt"

	"github.com/drakos74/klearn/learner"
	"github.com/spf13/cobra"
)

var folds int

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "K-fold cross validation of the configured learner",
	Long: `Cv splits the labelled samples into contiguous folds, trains a fresh learner
on all but one fold and scores it on the held out one.

Examples:
  klearn cv --config krr.json --data train.csv --folds 5`,
	RunE: runCV,
}

func init() {
	cvCmd.Flags().StringVar(&dataPath, "data", "", "csv file with the labelled samples")
	cvCmd.Flags().IntVar(&folds, "folds", 5, "number of folds")
	_ = cvCmd.MarkFlagRequired("data")
}

func runCV(cmd *cobra.Command, args []string) error {
	batch, err := readBatch(dataPath, true)
	if err != nil {
		return err
	}
	result, err := learner.KFold(cmd.Context(), folds, batch, func() (learner.CrossValidating, error) {
		l, err := cfg.NewLearner()
		if err != nil {
			return nil, err
		}
		cv, ok := l.(learner.CrossValidating)
		if !ok {
			return nil, fmt.Errorf("'%s' can not be evaluated: %w", cfg.Learner.Type, learner.ErrNotImplemented)
		}
		return cv, nil
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, score := range result.Folds {
		fmt.Fprintf(out, "fold %d\n", i)
		printScore(out, score)
	}
	fmt.Fprintln(out, "mean")
	printScore(out, result.Mean)
	return nil
}
