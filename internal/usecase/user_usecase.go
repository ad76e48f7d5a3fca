package usecase

import (
	"context"

	"github.com/takitajwar17/my-chat-app/internal/domain/entity"
	"github.com/takitajwar17/my-chat-app/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// ListUsers returns the user directory without the caller, for the
// start-a-conversation screen.
func (uc *UserUseCase) ListUsers(ctx context.Context, currentUserID string) ([]*entity.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	others := make([]*entity.User, 0, len(users))
	for _, user := range users {
		if user.ID == currentUserID {
			continue
		}
		others = append(others, user)
	}

	return others, nil
}
