package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livemap/models"
	"livemap/pkg"
	"livemap/repository"
	"livemap/store"
	"livemap/ws"
)

const testJWTSecret = "test-secret-do-not-use"

type authFixture struct {
	svc      AuthService
	userRepo repository.UserRepository
	authRepo repository.AuthStateRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	userRepo := repository.NewKVUserRepo(s)
	authRepo := repository.NewKVAuthStateRepo(s)
	svc := NewAuthService(userRepo, authRepo, ws.NewHub(), nil, testJWTSecret, 24)

	return &authFixture{svc: svc, userRepo: userRepo, authRepo: authRepo}
}

func TestAuthService_Signup(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	t.Run("creates user, persists auth state, issues valid token", func(t *testing.T) {
		result, err := f.svc.Signup(ctx, &models.SignupRequest{
			Email:    "alice@example.com",
			Password: "secret",
			Name:     "Alice",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "alice@example.com", result.User.Email)

		claims, err := f.svc.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, claims.UserID)

		state, err := f.authRepo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, state.User)
		assert.True(t, state.IsAuthenticated)
		assert.Equal(t, result.User.ID, state.User.ID)
	})

	t.Run("duplicate email conflicts, directory unchanged", func(t *testing.T) {
		_, err := f.svc.Signup(ctx, &models.SignupRequest{
			Email:    "alice@example.com",
			Password: "other",
			Name:     "Mallory",
		})
		assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

		users, err := f.userRepo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("invalid email is a bad request", func(t *testing.T) {
		_, err := f.svc.Signup(ctx, &models.SignupRequest{
			Email:    "not-an-email",
			Password: "x",
			Name:     "B",
		})
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, &models.SignupRequest{
		Email:    "alice@example.com",
		Password: "secret",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx))

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := f.svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "x"})
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		_, err := f.svc.Login(ctx, &models.LoginRequest{Email: "alice@example.com"})
		assert.ErrorIs(t, err, pkg.ErrUnauthorized)
	})

	t.Run("any non-empty password logs in", func(t *testing.T) {
		result, err := f.svc.Login(ctx, &models.LoginRequest{Email: "alice@example.com", Password: "whatever"})
		require.NoError(t, err)
		assert.Equal(t, "Alice", result.User.Name)

		state, err := f.svc.GetState(ctx)
		require.NoError(t, err)
		assert.True(t, state.IsAuthenticated)
	})

	t.Run("logout clears the session record only", func(t *testing.T) {
		require.NoError(t, f.svc.Logout(ctx))

		state, err := f.svc.GetState(ctx)
		require.NoError(t, err)
		assert.Nil(t, state.User)
		assert.False(t, state.IsAuthenticated)

		// kullanıcı dizinde durmaya devam eder
		users, err := f.userRepo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	result, err := f.svc.Signup(ctx, &models.SignupRequest{
		Email:    "alice@example.com",
		Password: "secret",
		Name:     "Alice",
	})
	require.NoError(t, err)

	t.Run("partial update merges fields", func(t *testing.T) {
		bio := "map enthusiast"
		updated, err := f.svc.UpdateProfile(ctx, result.User.ID, &models.UpdateProfileRequest{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "map enthusiast", *updated.Bio)
		assert.Equal(t, "Alice", updated.Name)
	})

	t.Run("session snapshot is refreshed for the session owner", func(t *testing.T) {
		name := "Alice B."
		_, err := f.svc.UpdateProfile(ctx, result.User.ID, &models.UpdateProfileRequest{Name: &name})
		require.NoError(t, err)

		state, err := f.svc.GetState(ctx)
		require.NoError(t, err)
		require.NotNil(t, state.User)
		assert.Equal(t, "Alice B.", state.User.Name)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		name := "Ghost"
		_, err := f.svc.UpdateProfile(ctx, "missing", &models.UpdateProfileRequest{Name: &name})
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	f := newAuthFixture(t)

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		_, err := f.svc.ValidateAccessToken("not.a.jwt")
		assert.ErrorIs(t, err, pkg.ErrUnauthorized)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := NewAuthService(f.userRepo, f.authRepo, ws.NewHub(), nil, "different-secret", 24)
		result, err := other.Signup(context.Background(), &models.SignupRequest{
			Email:    "bob@example.com",
			Password: "x",
			Name:     "Bob",
		})
		require.NoError(t, err)

		_, err = f.svc.ValidateAccessToken(result.AccessToken)
		assert.ErrorIs(t, err, pkg.ErrUnauthorized)
	})
}
