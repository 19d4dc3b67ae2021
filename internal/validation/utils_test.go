package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
)

type signupPayload struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
	Role     string `validate:"oneof=admin viewer"`
}

func TestCollectFieldErrors_TagMessages(t *testing.T) {
	err := Struct(&signupPayload{Email: "nope", Password: "abc", Role: "root"})

	fieldErrors := CollectFieldErrors(err, nil)
	assert.Equal(t, errs.FieldErrors{
		"email":    {"must be a valid email address"},
		"password": {"must be at least 6 characters"},
		"Role":     {"must be one of: admin viewer"},
	}, fieldErrors)
}

func TestCollectFieldErrors_CustomMessages(t *testing.T) {
	err := Struct(&signupPayload{Password: "abcdef", Role: "admin"})

	fieldErrors := CollectFieldErrors(err, func(fe validator.FieldError) string {
		if fe.Field() == "email" {
			return "Please enter your email"
		}
		return ""
	})
	assert.Equal(t, errs.FieldErrors{"email": {"Please enter your email"}}, fieldErrors)
}

func TestCollectFieldErrors_NilAndForeignErrors(t *testing.T) {
	assert.Nil(t, CollectFieldErrors(nil, nil))

	assert.Equal(t, errs.FieldErrors{"_": {"boom"}}, CollectFieldErrors(errors.New("boom"), nil))
}

func TestBind(t *testing.T) {
	e := echo.New()

	form := url.Values{"email": {"user@nextmail.com"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	var payload signupPayload
	require.NoError(t, Bind(c, &payload))
	assert.Equal(t, "user@nextmail.com", payload.Email)
}

func TestBind_Malformed(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var payload signupPayload
	err := Bind(c, &payload)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3958dc9e-712f-4377-85e9-fec4b6a6442a"))
	assert.False(t, IsValidUUID("inv-1"))
}
