package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/model"
	"userhub/internal/pkg/jwtutil"
)

type fakeUserStore struct {
	users  map[string]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if _, exists := s.users[user.Email]; exists {
		return errors.New("duplicate email")
	}
	s.nextID++
	user.ID = s.nextID
	stored := *user
	s.users[user.Email] = &stored
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	stored, exists := s.users[email]
	if !exists {
		return nil, nil
	}
	user := *stored
	return &user, nil
}

func (s *fakeUserStore) ListAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeUserCache struct {
	entries map[string]*model.User
	sets    int
}

func newFakeUserCache() *fakeUserCache {
	return &fakeUserCache{entries: make(map[string]*model.User)}
}

func (c *fakeUserCache) Get(_ context.Context, email string) (*model.User, bool, error) {
	user, ok := c.entries[email]
	return user, ok, nil
}

func (c *fakeUserCache) Set(_ context.Context, user *model.User) error {
	c.sets++
	c.entries[user.Email] = user
	return nil
}

const testSecret = "test-secret"

func newTestAuthService(store *fakeUserStore, cache UserCache) *AuthService {
	return NewAuthService(store, cache, testSecret, time.Hour)
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username: "alice",
		Email:    "alice@x.com",
		Phone:    "1234567890",
		Password: "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, nil)

	result, err := svc.Register(context.Background(), registerInput())

	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, uint(1), result.User.ID)
	assert.NotEqual(t, "secret1", result.User.PasswordHash)
	assert.False(t, result.User.IsAdmin)

	claims, err := jwtutil.ParseToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, nil)

	input := registerInput()
	input.Email = "  Alice@X.COM "
	result, err := svc.Register(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", result.User.Email)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, nil)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Len(t, store.users, 1, "duplicate registration must not add a record")
}

func TestAuthService_Register_SamePasswordDistinctDigests(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, nil)

	first, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	second := registerInput()
	second.Email = "bob@x.com"
	second.Username = "bob"
	result, err := svc.Register(context.Background(), second)
	require.NoError(t, err)

	assert.NotEqual(t, first.User.PasswordHash, result.User.PasswordHash)
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, nil)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginInput{Email: "alice@x.com", Password: "secret1"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	claims, err := jwtutil.ParseToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, nil)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "alice@x.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), nil)

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ResolveByEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, nil)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	user, err := svc.ResolveByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	missing, err := svc.ResolveByEmail(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAuthService_ResolveByEmail_CacheHit(t *testing.T) {
	cache := newFakeUserCache()
	cache.entries["alice@x.com"] = &model.User{ID: 7, Username: "alice", Email: "alice@x.com"}

	// Empty store: a hit proves the cache answered.
	svc := newTestAuthService(newFakeUserStore(), cache)

	user, err := svc.ResolveByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint(7), user.ID)
}

func TestAuthService_ResolveByEmail_PrimesCacheOnMiss(t *testing.T) {
	store := newFakeUserStore()
	cache := newFakeUserCache()
	svc := newTestAuthService(store, cache)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	setsAfterRegister := cache.sets

	delete(cache.entries, "alice@x.com")
	_, err = svc.ResolveByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)

	assert.Greater(t, cache.sets, setsAfterRegister)
	assert.Contains(t, cache.entries, "alice@x.com")
}
