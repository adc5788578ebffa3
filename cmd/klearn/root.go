package main

import (
	"fmt"
	"os"

	"github.com/drakos74/klearn/infra/config"
	"github.com/drakos74/klearn/internal/metrics"
	"github.com/drakos74/klearn/learner"
	"github.com/drakos74/klearn/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	debug       bool
	metricsAddr string
	modelName   string
	dataPath    string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "klearn",
	Short: "Kernel learners from the command line",
	Long: `klearn trains kernel learners on csv data, persists them
and uses the persisted learners to project or evaluate new samples.

The kernel, the learner and the storage are described by a json config:

  {"kernel": {"type": "gaussian", "sigma": 1.5}, "cache": 4096,
   "learner": {"type": "kpca", "components": 5},
   "storage": {"type": "json", "path": "file-storage", "table": "models"}}`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		addr := metricsAddr
		if addr == "" {
			addr = cfg.Metrics.Addr
		}
		if addr != "" {
			metrics.Serve(addr)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "klearn.json", "json config describing kernel, learner and storage")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics", "", "address to expose prometheus metrics on")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(cvCmd)
	rootCmd.AddCommand(inspectCmd)
}

// key is the storage key the named learner is persisted under.
func key(name string) storage.Key {
	return storage.Key{
		Name:  name,
		Label: cfg.Learner.Type,
	}
}

// restore loads the named learner from the configured storage.
func restore(name string) (learner.Learner, error) {
	if name == "" {
		return nil, fmt.Errorf("missing --name: %w", learner.ErrInvalidArgument)
	}
	p, err := cfg.NewStorage()
	if err != nil {
		return nil, err
	}
	return learner.Restore(p, key(name))
}
