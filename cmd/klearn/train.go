package main

import (
	"fmt"

	"github.com/drakos74/klearn/learner"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var withTarget bool

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train and persist a learner",
	Long: `Train reads the samples from a csv file, solves the configured learner
and persists it under the given name. A random name is generated if none is given.

Examples:
  klearn train --config kpca.json --data train.csv
  klearn train --config krr.json --data train.csv --target --name houses`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&dataPath, "data", "", "csv file with the training samples")
	trainCmd.Flags().BoolVar(&withTarget, "target", false, "the last csv column is the target value")
	trainCmd.Flags().StringVar(&modelName, "name", "", "name to persist the learner under")
	_ = trainCmd.MarkFlagRequired("data")
}

func runTrain(cmd *cobra.Command, args []string) error {
	batch, err := readBatch(dataPath, withTarget)
	if err != nil {
		return err
	}

	l, err := cfg.NewLearner()
	if err != nil {
		return err
	}
	if err := l.AddTrainingData(batch); err != nil {
		return fmt.Errorf("could not add training data: %w", err)
	}
	if err := l.Solve(); err != nil {
		return fmt.Errorf("could not solve: %w", err)
	}

	name := modelName
	if name == "" {
		name = uuid.New().String()
	}
	p, err := cfg.NewStorage()
	if err != nil {
		return err
	}
	k := key(name)
	if err := learner.Persist(p, k, l); err != nil {
		return err
	}
	log.Info().
		Str("name", name).
		Str("learner", cfg.Learner.Type).
		Int("samples", batch.Len()).
		Msg("trained learner")
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
