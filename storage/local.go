package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LocalShard creates in-memory shards, mostly useful for tests.
func LocalShard() Shard {
	return func(shard string) (Persistence, error) {
		return NewLocalStorage(), nil
	}
}

// LocalStorage keeps the json form of the values in memory.
type LocalStorage struct {
	files map[Key][]byte
	mutex *sync.RWMutex
}

// NewLocalStorage creates a new in-memory storage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		files: make(map[Key][]byte),
		mutex: new(sync.RWMutex),
	}
}

func (l *LocalStorage) Store(k Key, value interface{}) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}

	l.files[k] = bb
	return nil
}

func (l *LocalStorage) Load(k Key, value interface{}) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if v, ok := l.files[k]; ok {
		err := json.Unmarshal(v, value)
		if err != nil {
			return fmt.Errorf("could not unmarshal value: %v: %w", err, CouldNotLoadErr)
		}
		return nil
	}
	return fmt.Errorf("file not found '%+v': %w", k, NotFoundErr)
}

// Keys returns the keys currently held in memory.
func (l *LocalStorage) Keys() []Key {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	kk := make([]Key, 0, len(l.files))
	for k := range l.files {
		kk = append(kk, k)
	}
	return kk
}
