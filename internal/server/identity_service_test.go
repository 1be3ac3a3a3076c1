package server

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/vibe-jobs/internal/config"
	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/types"
)

// fakeIdentityStore is an in-memory IdentityStore for unit tests.
type fakeIdentityStore struct {
	identities map[uuid.UUID]*db.Identity
	failWith   error
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{identities: make(map[uuid.UUID]*db.Identity)}
}

func (f *fakeIdentityStore) CreateIdentity(_ context.Context, email, passwordHash string) (uuid.UUID, error) {
	if f.failWith != nil {
		return uuid.Nil, f.failWith
	}
	id := uuid.New()
	now := time.Now()
	f.identities[id] = &db.Identity{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return id, nil
}

func (f *fakeIdentityStore) GetIdentity(_ context.Context, id uuid.UUID) (*db.Identity, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.identities[id], nil
}

func (f *fakeIdentityStore) GetIdentityByEmail(_ context.Context, email string) (*db.Identity, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, identity := range f.identities {
		if strings.EqualFold(identity.Email, email) {
			return identity, nil
		}
	}
	return nil, nil
}

func (f *fakeIdentityStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	identity, err := f.GetIdentityByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return identity != nil, nil
}

func (f *fakeIdentityStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	if f.failWith != nil {
		return f.failWith
	}
	identity, ok := f.identities[id]
	if !ok {
		return fmt.Errorf("identity not found")
	}
	identity.PasswordHash = passwordHash
	return nil
}

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{
		BcryptCost: 10, // Lower cost for faster tests
		Pepper:     "",
	}
}

func TestIdentityService_Register(t *testing.T) {
	t.Run("creates identity and strips password hash", func(t *testing.T) {
		store := newFakeIdentityStore()
		svc := NewIdentityService(store, testPasswordConfig())

		identity, err := svc.Register(context.Background(), &types.RegisterRequest{
			Email:    "dev@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "dev@example.com", identity.Email)
		assert.NotEqual(t, uuid.Nil, identity.ID)

		stored := store.identities[identity.ID]
		require.NotNil(t, stored)
		assert.NotEqual(t, "password123", stored.PasswordHash)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		store := newFakeIdentityStore()
		svc := NewIdentityService(store, testPasswordConfig())

		_, err := svc.Register(context.Background(), &types.RegisterRequest{
			Email:    "dev@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), &types.RegisterRequest{
			Email:    "dev@example.com",
			Password: "different456",
		})
		require.Error(t, err)
		assert.IsType(t, &ErrEmailAlreadyExists{}, err)
	})
}

func TestIdentityService_Login(t *testing.T) {
	store := newFakeIdentityStore()
	svc := NewIdentityService(store, testPasswordConfig())

	registered, err := svc.Register(context.Background(), &types.RegisterRequest{
		Email:    "dev@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		identity, err := svc.Login(context.Background(), &types.LoginRequest{
			Email:    "dev@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, identity.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &types.LoginRequest{
			Email:    "dev@example.com",
			Password: "wrong-password",
		})
		require.Error(t, err)
		assert.IsType(t, &ErrInvalidCredentials{}, err)
	})

	t.Run("unknown email gets the same generic error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &types.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		require.Error(t, err)
		assert.IsType(t, &ErrInvalidCredentials{}, err)
	})
}

func TestIdentityService_UpdatePassword(t *testing.T) {
	store := newFakeIdentityStore()
	svc := NewIdentityService(store, testPasswordConfig())

	registered, err := svc.Register(context.Background(), &types.RegisterRequest{
		Email:    "dev@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), registered.ID, "wrong", "newpassword1")
		require.Error(t, err)
		assert.IsType(t, &ErrPasswordMismatch{}, err)
	})

	t.Run("unknown identity", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), uuid.New(), "password123", "newpassword1")
		require.Error(t, err)
		assert.IsType(t, &ErrIdentityNotFound{}, err)
	})

	t.Run("updates and old password stops working", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), registered.ID, "password123", "newpassword1")
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), &types.LoginRequest{
			Email:    "dev@example.com",
			Password: "password123",
		})
		assert.IsType(t, &ErrInvalidCredentials{}, err)

		_, err = svc.Login(context.Background(), &types.LoginRequest{
			Email:    "dev@example.com",
			Password: "newpassword1",
		})
		assert.NoError(t, err)
	})
}
