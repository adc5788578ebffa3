package main

import (
	"fmt"

	"github.com/drakos74/klearn/learner"
	"github.com/spf13/cobra"
)

var numVectors int

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project samples with a persisted learner",
	Long: `Project restores the named learner and prints the coordinates of every
sample on its first components as csv.

Examples:
  klearn project --config kpca.json --name faces --data x.csv -n 3`,
	RunE: runProject,
}

func init() {
	projectCmd.Flags().StringVar(&dataPath, "data", "", "csv file with the samples to project")
	projectCmd.Flags().StringVar(&modelName, "name", "", "name of the persisted learner")
	projectCmd.Flags().IntVarP(&numVectors, "num-vectors", "n", learner.DefaultProjections, "number of components to project on")
	_ = projectCmd.MarkFlagRequired("data")
	_ = projectCmd.MarkFlagRequired("name")
}

func runProject(cmd *cobra.Command, args []string) error {
	l, err := restore(modelName)
	if err != nil {
		return err
	}
	p, ok := l.(learner.Projecting)
	if !ok {
		return fmt.Errorf("'%s' can not project: %w", modelName, learner.ErrNotImplemented)
	}
	batch, err := readBatch(dataPath, false)
	if err != nil {
		return err
	}
	projections, err := p.Project(batch.X, numVectors)
	if err != nil {
		return err
	}
	return writeRows(cmd.OutOrStdout(), projections)
}
