// Package diskv persists values as gzip compressed json blobs in a diskv store.
package diskv

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/drakos74/klearn/storage"
	"github.com/peterbourgon/diskv"
)

const (
	blockSize    = 8
	cacheSizeMax = 4096 * 1024
)

// Storage is a storage.Persistence backed by diskv.
type Storage struct {
	d *diskv.Diskv
}

// Shard creates diskv shards for the given table under path.
func Shard(path, table string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return New(filepath.Join(path, table, shard)), nil
	}
}

// New creates a new diskv storage rooted at the given path.
func New(path string) *Storage {
	return &Storage{
		d: diskv.New(diskv.Options{
			BasePath:     path,
			Transform:    BlockTransform(blockSize),
			CacheSizeMax: cacheSizeMax,
			Compression:  diskv.NewGzipCompression(),
		}),
	}
}

// BlockTransform splits the key into directories of blockSize characters.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

func (s *Storage) Store(k storage.Key, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value for '%s': %w", k.Path(), err)
	}
	err = s.d.Write(k.Path(), b)
	if err != nil {
		return fmt.Errorf("could not write key '%s': %w", k.Path(), err)
	}
	return nil
}

func (s *Storage) Load(k storage.Key, value interface{}) error {
	if !s.d.Has(k.Path()) {
		return fmt.Errorf("not found '%v': %w", k, storage.NotFoundErr)
	}
	b, err := s.d.Read(k.Path())
	if err != nil {
		return fmt.Errorf("could not read key '%s' %s: %w", k.Path(), err.Error(), storage.CouldNotLoadErr)
	}
	err = json.Unmarshal(b, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal key '%s': '%v': %w", k.Path(), err, storage.CouldNotLoadErr)
	}
	return nil
}

// Erase removes the value for the given key.
func (s *Storage) Erase(k storage.Key) error {
	return s.d.Erase(k.Path())
}
