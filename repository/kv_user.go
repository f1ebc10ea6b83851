package repository

import (
	"context"
	"fmt"
	"time"

	"livemap/models"
	"livemap/pkg"
	"livemap/store"
)

// usersKey, kullanıcı dizinin saklandığı store anahtarı.
const usersKey = "live_map_users"

// kvUserRepo, UserRepository interface'inin key-value store implementasyonu.
type kvUserRepo struct {
	store *store.Store
}

// NewKVUserRepo, constructor.
// UserRepository interface'i döner (concrete struct değil) — Dependency Inversion.
func NewKVUserRepo(s *store.Store) UserRepository {
	return &kvUserRepo{store: s}
}

// readUsers, dizini bütün olarak okur.
// Anahtar yoksa veya içerik bozuksa boş liste döner (store loglar).
func (r *kvUserRepo) readUsers(ctx context.Context) []models.User {
	var users []models.User
	r.store.ReadJSON(ctx, usersKey, &users)
	if users == nil {
		users = make([]models.User, 0)
	}
	return users
}

func (r *kvUserRepo) writeUsers(ctx context.Context, users []models.User) error {
	if err := r.store.WriteJSON(ctx, usersKey, users); err != nil {
		return fmt.Errorf("%w: failed to persist users: %v", pkg.ErrInternal, err)
	}
	return nil
}

func (r *kvUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	return r.readUsers(ctx), nil
}

func (r *kvUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range r.readUsers(ctx) {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *kvUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	// Exact match — case folding veya trim yapılmaz, kayıt neyse o.
	for _, u := range r.readUsers(ctx) {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *kvUserRepo) Create(ctx context.Context, user *models.User) error {
	users := r.readUsers(ctx)

	for _, u := range users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
	}

	if user.ID == "" {
		user.ID = pkg.NewID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	users = append(users, *user)
	return r.writeUsers(ctx, users)
}

func (r *kvUserRepo) Update(ctx context.Context, id string, updates *models.UpdateProfileRequest) (*models.User, error) {
	users := r.readUsers(ctx)

	for i := range users {
		if users[i].ID == id {
			updates.ApplyTo(&users[i])
			if err := r.writeUsers(ctx, users); err != nil {
				return nil, err
			}
			user := users[i]
			return &user, nil
		}
	}

	return nil, pkg.ErrNotFound
}
