package repository

import (
	"context"
	"fmt"

	"livemap/models"
	"livemap/pkg"
	"livemap/store"
)

// authKey, oturum kaydının saklandığı store anahtarı.
const authKey = "live_map_auth"

// kvAuthStateRepo, AuthStateRepository'nin key-value store implementasyonu.
type kvAuthStateRepo struct {
	store *store.Store
}

// NewKVAuthStateRepo, constructor.
func NewKVAuthStateRepo(s *store.Store) AuthStateRepository {
	return &kvAuthStateRepo{store: s}
}

func (r *kvAuthStateRepo) Get(ctx context.Context) (*models.AuthState, error) {
	state := &models.AuthState{}
	r.store.ReadJSON(ctx, authKey, state)
	return state, nil
}

func (r *kvAuthStateRepo) Set(ctx context.Context, state *models.AuthState) error {
	if err := r.store.WriteJSON(ctx, authKey, state); err != nil {
		return fmt.Errorf("%w: failed to persist auth state: %v", pkg.ErrInternal, err)
	}
	return nil
}

func (r *kvAuthStateRepo) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, authKey); err != nil {
		return fmt.Errorf("%w: failed to clear auth state: %v", pkg.ErrInternal, err)
	}
	return nil
}
