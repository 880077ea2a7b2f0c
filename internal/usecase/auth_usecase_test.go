package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"hiretop/internal/domain/user"
	"hiretop/internal/infrastructure/metrics"
	"hiretop/internal/pkg/jwt"
	ucauth "hiretop/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
}

func (f *fakeUsers) CreateUser(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func newAuthFixture() (*Auth, jwt.Service, *countingEvents) {
	users := &fakeUsers{byID: map[uuid.UUID]user.User{}}
	tokens := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	events := newCountingEvents()
	svc := ucauth.NewService(users).WithCost(bcrypt.MinCost)
	return NewAuthUsecase(svc, users, tokens, events), tokens, events
}

func TestAuth_RegisterIssuesRoleTokens(t *testing.T) {
	uc, tokens, events := newAuthFixture()

	u, pair, err := uc.Register(context.Background(), ucauth.RegisterInput{Email: "hr@acme.io", Password: "secret123", Role: "enterprise"})
	require.NoError(t, err)
	assert.Equal(t, 1, events.counts[metrics.EventUserRegistered])

	claims, err := tokens.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "enterprise", claims.Role)
	assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
}

func TestAuth_Refresh(t *testing.T) {
	uc, _, _ := newAuthFixture()
	_, pair, err := uc.Register(context.Background(), ucauth.RegisterInput{Email: "ana@mail.com", Password: "secret123", Role: "candidate"})
	require.NoError(t, err)

	next, err := uc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	_, err = uc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = uc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_LoginAndMe(t *testing.T) {
	uc, _, _ := newAuthFixture()
	reg, _, err := uc.Register(context.Background(), ucauth.RegisterInput{Email: "ana@mail.com", Password: "secret123", Role: "candidate"})
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), ucauth.LoginInput{Email: "ana@mail.com", Password: "nope-nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	u, pair, err := uc.Login(context.Background(), ucauth.LoginInput{Email: "ana@mail.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
	assert.NotEmpty(t, pair.RefreshToken)

	me, err := uc.Me(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Empty(t, me.PasswordHash)
	assert.Equal(t, user.RoleCandidate, me.Role)
}
