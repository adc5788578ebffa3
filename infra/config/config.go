package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/drakos74/klearn/kernel"
	"github.com/drakos74/klearn/learner"
	"github.com/drakos74/klearn/learner/kpca"
	"github.com/drakos74/klearn/learner/krr"
	"github.com/drakos74/klearn/storage"
	"github.com/drakos74/klearn/storage/diskv"
	jsonstore "github.com/drakos74/klearn/storage/file/json"
	"github.com/rs/zerolog/log"
)

const (
	JsonStorage  = "json"
	DiskvStorage = "diskv"
	LocalStorage = "local"
	VoidStorage  = "void"
)

// Config describes a learner run.
type Config struct {
	Kernel  kernel.Spec `json:"kernel"`
	Cache   int         `json:"cache"`
	Learner Learner     `json:"learner"`
	Storage Storage     `json:"storage"`
	Metrics Metrics     `json:"metrics"`
}

// Learner defines the learner type and its parameters.
// Components applies to kpca, Lambda to krr.
type Learner struct {
	Type       string  `json:"type"`
	Components int     `json:"components"`
	Tolerance  float64 `json:"tolerance"`
	Lambda     float64 `json:"lambda"`
}

// Storage defines where learners are persisted.
type Storage struct {
	Type  string `json:"type"`
	Path  string `json:"path"`
	Table string `json:"table"`
	Shard string `json:"shard"`
}

// Metrics defines the address to expose the prometheus metrics on, empty disables them.
type Metrics struct {
	Addr string `json:"addr"`
}

// Load loads the config from the given json file.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not load config '%s': %w", path, err)
	}
	err = json.Unmarshal(b, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("could not unmarshal config '%s': %w", path, err)
	}
	log.Info().
		Str("path", path).
		Str("kernel", cfg.Kernel.Type).
		Str("learner", cfg.Learner.Type).
		Str("storage", cfg.Storage.Type).
		Msg("loaded config")
	return cfg, nil
}

// MustLoad loads the config from the given json file and panics on failure.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// NewKernel creates the kernel, wrapped in a cache if one is configured.
// Polynomial and sigmoid kernels default to a gamma of 1.
func (c Config) NewKernel() (kernel.Kernel, error) {
	spec := c.Kernel
	switch spec.Type {
	case kernel.PolynomialType, kernel.SigmoidType:
		if spec.Gamma == 0 {
			spec.Gamma = 1
		}
	}
	k, err := kernel.New(spec)
	if err != nil {
		return nil, err
	}
	if c.Cache > 0 {
		return kernel.NewCached(k, c.Cache)
	}
	return k, nil
}

// NewLearner creates a new learner with the configured kernel.
func (c Config) NewLearner() (learner.Learner, error) {
	k, err := c.NewKernel()
	if err != nil {
		return nil, err
	}
	switch c.Learner.Type {
	case kpca.Type:
		opts := []kpca.Option{kpca.WithMaxComponents(c.Learner.Components)}
		if c.Learner.Tolerance > 0 {
			opts = append(opts, kpca.WithTolerance(c.Learner.Tolerance))
		}
		return kpca.New(k, opts...)
	case krr.Type:
		lambda := c.Learner.Lambda
		if lambda == 0 {
			lambda = krr.DefaultLambda
		}
		return krr.New(k, krr.WithLambda(lambda))
	}
	return nil, fmt.Errorf("learner type '%s': %w", c.Learner.Type, learner.ErrNotImplemented)
}

// NewStorage creates the configured persistence.
func (c Config) NewStorage() (storage.Persistence, error) {
	path := c.Storage.Path
	if path == "" {
		path = storage.DefaultDir
	}
	table := c.Storage.Table
	if table == "" {
		table = "models"
	}
	shard := c.Storage.Shard
	if shard == "" {
		shard = c.Learner.Type
	}
	var shardFn storage.Shard
	switch c.Storage.Type {
	case JsonStorage, "":
		shardFn = jsonstore.BlobShard(path, table)
	case DiskvStorage:
		shardFn = diskv.Shard(path, table)
	case LocalStorage:
		shardFn = storage.LocalShard()
	case VoidStorage:
		shardFn = storage.VoidShard()
	default:
		return nil, fmt.Errorf("storage type '%s': %w", c.Storage.Type, storage.UnrecoverableErr)
	}
	return shardFn(shard)
}
