package learner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/drakos74/klearn/kernel"
	"github.com/drakos74/klearn/storage"
	"github.com/rs/zerolog/log"
)

// SnapshotVersion is the version of the envelope written by WriteSnapshot.
const SnapshotVersion = 1

// Snapshot is the persisted form of a learner.
// Payload is the learner specific state, only its own loader understands it.
type Snapshot struct {
	Version int             `json:"version"`
	Type    string          `json:"type"`
	Kernel  kernel.Spec     `json:"kernel"`
	Payload json.RawMessage `json:"payload"`
}

// LoadFunc restores a learner of a given type from its snapshot payload.
type LoadFunc func(k kernel.Kernel, payload json.RawMessage) (Learner, error)

var (
	loadersMu sync.RWMutex
	loaders   = make(map[string]LoadFunc)
)

// Register makes a loader available for the given learner type.
// It panics if the loader is nil or registered twice for the same type.
func Register(learnerType string, fn LoadFunc) {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	if fn == nil {
		panic(fmt.Sprintf("learner: nil loader for '%s'", learnerType))
	}
	if _, ok := loaders[learnerType]; ok {
		panic(fmt.Sprintf("learner: loader registered twice for '%s'", learnerType))
	}
	loaders[learnerType] = fn
}

// Types returns the sorted learner types that can be loaded.
func Types() []string {
	loadersMu.RLock()
	defer loadersMu.RUnlock()
	tt := make([]string, 0, len(loaders))
	for t := range loaders {
		tt = append(tt, t)
	}
	sort.Strings(tt)
	return tt
}

func loader(learnerType string) (LoadFunc, bool) {
	loadersMu.RLock()
	defer loadersMu.RUnlock()
	fn, ok := loaders[learnerType]
	return fn, ok
}

// WriteSnapshot writes the learner state in the envelope Load understands.
// It fails if the kernel could not be rebuilt from its Spec by Load.
func WriteSnapshot(w io.Writer, learnerType string, k kernel.Kernel, payload interface{}) error {
	if err := kernel.Validate(k); err != nil {
		return fmt.Errorf("kernel %s of '%s' can not be restored: %w", k.Spec(), learnerType, err)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal '%s' payload: %w", learnerType, err)
	}
	err = json.NewEncoder(w).Encode(Snapshot{
		Version: SnapshotVersion,
		Type:    learnerType,
		Kernel:  k.Spec(),
		Payload: b,
	})
	if err != nil {
		return fmt.Errorf("could not write '%s' snapshot: %w", learnerType, err)
	}
	return nil
}

// Load restores a learner from data written by its Save method.
// The learner type must have been registered, otherwise it fails with ErrNotImplemented.
func Load(r io.Reader) (Learner, error) {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("could not decode snapshot: %v: %w", err, storage.CouldNotLoadErr)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d: %w", snapshot.Version, ErrInvalidArgument)
	}
	fn, ok := loader(snapshot.Type)
	if !ok {
		return nil, fmt.Errorf("load '%s': %w", snapshot.Type, ErrNotImplemented)
	}
	k, err := kernel.New(snapshot.Kernel)
	if err != nil {
		return nil, fmt.Errorf("could not restore kernel for '%s': %w", snapshot.Type, err)
	}
	l, err := fn(k, snapshot.Payload)
	if err != nil {
		return nil, fmt.Errorf("could not load '%s': %w", snapshot.Type, err)
	}
	log.Debug().
		Str("learner", snapshot.Type).
		Str("kernel", snapshot.Kernel.String()).
		Msg("loaded learner")
	return l, nil
}

// Persist saves the learner into the given storage.
func Persist(p storage.Persistence, key storage.Key, l Learner) error {
	var buf bytes.Buffer
	if err := l.Save(&buf); err != nil {
		return err
	}
	if err := p.Store(key, json.RawMessage(buf.Bytes())); err != nil {
		return fmt.Errorf("could not store '%s': %w", key.Path(), err)
	}
	log.Info().
		Str("key", key.Path()).
		Int("bytes", buf.Len()).
		Msg("persisted learner")
	return nil
}

// Restore loads a learner persisted with Persist.
func Restore(p storage.Persistence, key storage.Key) (Learner, error) {
	var raw json.RawMessage
	if err := p.Load(key, &raw); err != nil {
		return nil, fmt.Errorf("could not restore '%s': %w", key.Path(), err)
	}
	return Load(bytes.NewReader(raw))
}
