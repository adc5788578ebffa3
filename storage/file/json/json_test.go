package json

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/klearn/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Solution struct {
	ID     string      `json:"id"`
	Alphas [][]float64 `json:"alphas"`
}

func TestBlobStorage_StoreLoad(t *testing.T) {

	dir := t.TempDir()

	blob := NewJsonBlob("models", "test", true).WithPath(dir)

	k := storage.Key{
		Name:  uuid.New().String(),
		Label: "kpca",
	}

	in := Solution{
		ID:     k.Name,
		Alphas: [][]float64{{0.1, 0.2}, {0.3, 0.4}},
	}

	err := blob.Store(k, in)
	require.NoError(t, err)

	var out Solution
	err = blob.Load(k, &out)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBlobStorage_NotFound(t *testing.T) {

	blob := NewJsonBlob("models", "test", false).WithPath(t.TempDir())

	var out Solution
	err := blob.Load(storage.Key{Name: "missing"}, &out)
	assert.True(t, errors.Is(err, storage.NotFoundErr))
}

func TestBlobStorage_Unreadable(t *testing.T) {

	blob := NewJsonBlob("models", "test", false).WithPath(t.TempDir())
	k := storage.Key{Name: "dir"}

	// a directory in place of the file can not be read
	require.NoError(t, os.MkdirAll(filepath.Join(blob.Dir(), k.Path()+".json"), 0755))

	var out Solution
	err := blob.Load(k, &out)
	assert.True(t, errors.Is(err, storage.CouldNotLoadErr))
	assert.False(t, errors.Is(err, storage.NotFoundErr))
}
