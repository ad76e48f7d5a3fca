package usecase

import "context"

// FirebaseAuthClient is the slice of the identity provider this service
// consumes.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, string, error)
	RefreshIDToken(refreshToken string) (string, string, error)
}

// Principal is the verified signed-in user. It is resolved once by the auth
// middleware and passed explicitly into every call; nothing in this layer
// reads ambient auth state.
type Principal struct {
	UID         string
	DisplayName string
}
