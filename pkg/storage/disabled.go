package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned by the disabled store.
var ErrNotConfigured = errors.New("object storage is not configured")

// Disabled returns a store that rejects every operation, for
// deployments without object storage configured.
func Disabled() ObjectStore {
	return disabledStore{}
}

type disabledStore struct{}

func (disabledStore) Upload(context.Context, []byte, string, string) (string, error) {
	return "", ErrNotConfigured
}

func (disabledStore) Delete(context.Context, string) error {
	return ErrNotConfigured
}

func (disabledStore) PresignedURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrNotConfigured
}
