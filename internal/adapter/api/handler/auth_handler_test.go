package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/takitajwar17/my-chat-app/internal/adapter/api"
)

func newTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = api.NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Validation failures must be rejected before the use case (and the store)
// is ever touched; the handlers below run with a nil use case to prove it.

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := NewAuthHandler(nil)
	c, rec := newTestContext(t, `{"email":"a@b.com","password":"12345","display_name":"A"}`)

	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, rec.Body.String(), "password")
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	h := NewAuthHandler(nil)

	for _, body := range []string{
		`{"password":"123456","display_name":"A"}`,
		`{"email":"a@b.com","password":"123456"}`,
		`{"email":"not-an-email","password":"123456","display_name":"A"}`,
	} {
		c, rec := newTestContext(t, body)
		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestSendMessageRejectsMissingText(t *testing.T) {
	h := NewConversationHandler(nil)
	c, rec := newTestContext(t, `{}`)
	c.SetParamNames("id")
	c.SetParamValues("alice_bob")

	assert.NoError(t, h.SendMessage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
