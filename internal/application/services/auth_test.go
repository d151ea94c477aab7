package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fileshare-api/internal/domain/user"
	"fileshare-api/internal/infrastructure/jwt"
)

type fakeUserRepository struct {
	mu     sync.Mutex
	nextID uint64
	byName map[string]*user.User

	createErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{nextID: 1, byName: make(map[string]*user.User)}
}

func (r *fakeUserRepository) FetchUserByID(_ context.Context, id user.ID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FetchUserByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byName[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepository) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byName {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	req.ID = user.ID(r.nextID)
	r.nextID++
	r.byName[req.Username] = &req

	cp := req
	return &cp, nil
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewAuthService(repo, jwt.New("test-secret"), newTestCounter())

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, user.ID(1), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)

	// the stored hash verifies against the plaintext and never equals it
	assert.NotEqual(t, "hunter22", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")))
}

func TestAuthService_Register_RepositoryFailure(t *testing.T) {
	repo := newFakeUserRepository()
	repo.createErr = errBoom
	svc := NewAuthService(repo, jwt.New("test-secret"), newTestCounter())

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, errBoom)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepository()
	jwtService := jwt.New("test-secret")
	svc := NewAuthService(repo, jwtService, newTestCounter())

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		token, err := svc.Login(context.Background(), "alice", "hunter22")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		identity, ok := jwtService.Verify(token)
		require.True(t, ok)
		assert.Equal(t, user.ID(1), identity.UserID)
		assert.Equal(t, "alice", identity.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "mallory", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
