package repository

import (
	"context"
	"fmt"

	"livemap/pkg"
	"livemap/store"
)

// kvFlagRepo, FlagRepository'nin key-value store implementasyonu.
// Flag değerleri JSON değil düz string olarak saklanır.
type kvFlagRepo struct {
	store *store.Store
}

// NewKVFlagRepo, constructor.
func NewKVFlagRepo(s *store.Store) FlagRepository {
	return &kvFlagRepo{store: s}
}

func (r *kvFlagRepo) Get(ctx context.Context, key string) (string, error) {
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read flag %q: %v", pkg.ErrInternal, key, err)
	}
	if !found {
		return "", nil
	}
	return string(raw), nil
}

func (r *kvFlagRepo) Set(ctx context.Context, key, value string) error {
	if err := r.store.Set(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("%w: failed to write flag %q: %v", pkg.ErrInternal, key, err)
	}
	return nil
}
