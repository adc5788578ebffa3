package krr

import (
	"github.com/drakos74/klearn/storage"
	"github.com/google/uuid"
)

func storageKey() storage.Key {
	return storage.Key{
		Name:  uuid.New().String(),
		Label: Type,
	}
}
