package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"

	"userhub/internal/model"
	"userhub/internal/pkg/jwtutil"
	"userhub/internal/pkg/passhash"
)

var (
	ErrEmailExists        = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the persistence contract the auth flow needs. Email uniqueness
// is enforced by the store; Create surfaces the violation when two requests
// race past the existence check.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
}

// UserCache is optional read-through caching for subject resolution. A nil
// cache disables it.
type UserCache interface {
	Get(ctx context.Context, email string) (*model.User, bool, error)
	Set(ctx context.Context, user *model.User) error
}

type AuthService struct {
	users     UserStore
	cache     UserCache
	jwtSecret string
	tokenTTL  time.Duration
}

type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users UserStore, cache UserCache, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		cache:     cache,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a user with a hashed credential and issues a token for the
// persisted record. The plaintext password is never stored.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	digest, err := passhash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: digest,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.tokenTTL, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("user created but token issue failed: %w", err)
	}

	s.primeCache(ctx, user)
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a fresh token. An unknown email and a
// wrong password are distinct sentinel errors; the transport layer keeps the
// client-facing message identical for both.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !passhash.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.tokenTTL, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// ResolveByEmail looks a user up for the auth gate, cache first. Cache
// failures are logged and fall through to the store; they never fail the
// request. Returns (nil, nil) when no record matches.
func (s *AuthService) ResolveByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, email)
		if err != nil {
			log.Printf("user cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	s.primeCache(ctx, user)
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

func (s *AuthService) primeCache(ctx context.Context, user *model.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, user); err != nil {
		log.Printf("user cache write failed: %v", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysqldrv.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
