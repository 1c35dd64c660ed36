// Package session pins a stable per-device user identity.
//
// There is no account system; each installation mints one random id on
// first launch and reuses it forever, so records stay keyed consistently
// across restarts.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadopc/fitlog/internal/store"
)

const userIDKey = "device_user_id"

// UserID returns the device's user id, generating and persisting a new one
// on first call. The id is stored as plain text, not JSON.
func UserID(kv *store.Store) (string, error) {
	id, err := kv.Get(userIDKey)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("read user id: %w", err)
	}

	id = uuid.NewString()
	// Conditional write so two racing first launches settle on one id.
	wrote, err := kv.PutIf(userIDKey, nil, id)
	if err != nil {
		return "", fmt.Errorf("store user id: %w", err)
	}
	if !wrote {
		return kv.Get(userIDKey)
	}
	return id, nil
}
