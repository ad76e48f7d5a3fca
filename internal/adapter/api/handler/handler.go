package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/takitajwar17/my-chat-app/internal/usecase"
)

// principalFromContext rebuilds the verified principal placed on the context
// by the auth middleware.
func principalFromContext(c echo.Context) usecase.Principal {
	uid, _ := c.Get("uid").(string)
	displayName, _ := c.Get("displayName").(string)
	return usecase.Principal{
		UID:         uid,
		DisplayName: displayName,
	}
}
