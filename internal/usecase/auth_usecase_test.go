package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takitajwar17/my-chat-app/internal/domain/entity"
	"github.com/takitajwar17/my-chat-app/pkg/errors"
)

type fakeAuthClient struct {
	createdUsers int
	failSignIn   bool
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.createdUsers++
	return "uid-" + displayName, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return "uid-Alice", nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, string, error) {
	if f.failSignIn {
		return "", "", errors.Unauthorized("INVALID_PASSWORD", nil)
	}
	return "id-token", "refresh-token", nil
}

func (f *fakeAuthClient) RefreshIDToken(refreshToken string) (string, string, error) {
	return "id-token-2", "refresh-token-2", nil
}

func newAuthFixture() (*AuthUseCase, *fakeUserRepo, *fakeAuthClient) {
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"uid-Alice": {ID: "uid-Alice", DisplayName: "Alice", Email: "alice@example.com"},
	}}
	authClient := &fakeAuthClient{}
	return NewAuthUseCase(userRepo, authClient), userRepo, authClient
}

func TestRegisterCreatesProfileWithDisplayName(t *testing.T) {
	uc, userRepo, authClient := newAuthFixture()

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:       "bob@example.com",
		Password:    "secret1",
		DisplayName: "Bob",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, authClient.createdUsers)
	assert.Equal(t, "id-token", result.Token)
	assert.Equal(t, "refresh-token", result.RefreshToken)

	stored := userRepo.users["uid-Bob"]
	require.NotNil(t, stored)
	assert.Equal(t, "Bob", stored.DisplayName)
	assert.Equal(t, "bob@example.com", stored.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, _, authClient := newAuthFixture()

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:       "alice@example.com",
		Password:    "secret1",
		DisplayName: "Alice Again",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
	assert.Equal(t, 0, authClient.createdUsers, "duplicate email must not reach the identity provider")
}

func TestLoginInvalidCredentials(t *testing.T) {
	uc, _, authClient := newAuthFixture()
	authClient.failSignIn = true

	_, err := uc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestLoginReturnsProfile(t *testing.T) {
	uc, _, _ := newAuthFixture()

	result, err := uc.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", result.User.DisplayName)
	assert.Equal(t, "id-token", result.Token)
}
