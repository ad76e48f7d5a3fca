package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/takitajwar17/my-chat-app/internal/usecase"
	"github.com/takitajwar17/my-chat-app/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// ListUsers returns every registered user except the caller.
func (h *UserHandler) ListUsers(c echo.Context) error {
	principal := principalFromContext(c)

	users, err := h.userUseCase.ListUsers(c.Request().Context(), principal.UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, users)
}
