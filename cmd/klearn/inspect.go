package main

import (
	"fmt"

	"github.com/drakos74/klearn/learner/kpca"
	"github.com/drakos74/klearn/learner/krr"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the state of a persisted learner",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&modelName, "name", "", "name of the persisted learner")
	_ = inspectCmd.MarkFlagRequired("name")
}

func runInspect(cmd *cobra.Command, args []string) error {
	l, err := restore(modelName)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "name:   %s\n", modelName)
	fmt.Fprintf(out, "kernel: %s\n", l.Kernel().Spec())
	switch v := l.(type) {
	case *kpca.KPCA:
		fmt.Fprintf(out, "type:   %s\n", kpca.Type)
		fmt.Fprintf(out, "components: %d\n", v.Components())
		variance := v.ExplainedVariance()
		for i, e := range v.Eigenvalues() {
			fmt.Fprintf(out, "  %d eigenvalue=%.6f variance=%.4f\n", i, e, variance[i])
		}
	case *krr.KRR:
		fmt.Fprintf(out, "type:   %s\n", krr.Type)
		fmt.Fprintf(out, "lambda: %g\n", v.Lambda())
	default:
		fmt.Fprintf(out, "type:   %T\n", l)
	}
	return nil
}
