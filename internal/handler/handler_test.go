package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/auth"
	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/service"
)

type fakeInvoices struct {
	createForm *model.InvoiceForm
	updateID   string
	updateForm *model.InvoiceForm
	deleteID   string

	result    *model.Result
	deleteErr error
}

func (f *fakeInvoices) CreateInvoice(_ context.Context, form *model.InvoiceForm) *model.Result {
	f.createForm = form
	return f.result
}

func (f *fakeInvoices) UpdateInvoice(_ context.Context, id string, form *model.InvoiceForm) *model.Result {
	f.updateID, f.updateForm = id, form
	return f.result
}

func (f *fakeInvoices) DeleteInvoice(_ context.Context, id string) (*model.Result, error) {
	f.deleteID = id
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.result, nil
}

type fakeAuth struct {
	form      *model.LoginForm
	result    *model.Result
	session   *auth.Session
	err       error
	loggedOut string
	logoutErr error
}

func (f *fakeAuth) Authenticate(_ context.Context, form *model.LoginForm) (*model.Result, *auth.Session, error) {
	f.form = form
	return f.result, f.session, f.err
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return f.logoutErr
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = (&middleware.GlobalMiddlewares{}).GlobalErrorHandler
	return e
}

func postForm(e *echo.Echo, target string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) model.State {
	t.Helper()
	var state model.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func invoiceRoutes(invoices InvoiceActions) *echo.Echo {
	h := NewInvoiceHandler(invoices)
	e := newEcho()
	e.POST("/dashboard/invoices/create", HandleForm(h.CreateInvoice, http.StatusInternalServerError))
	e.POST("/dashboard/invoices/:id/edit", HandleForm(h.UpdateInvoice, http.StatusInternalServerError))
	e.POST("/dashboard/invoices/:id/delete", HandleForm(h.DeleteInvoice, http.StatusInternalServerError))
	return e
}

func TestCreateInvoice_Redirect(t *testing.T) {
	invoices := &fakeInvoices{result: model.Redirect("/dashboard/invoices")}
	e := invoiceRoutes(invoices)

	rec := postForm(e, "/dashboard/invoices/create", url.Values{
		"customerId": {"c1"},
		"amount":     {"125.50"},
		"status":     {"pending"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/invoices", rec.Header().Get(echo.HeaderLocation))
	require.NotNil(t, invoices.createForm)
	assert.Equal(t, model.InvoiceForm{CustomerID: "c1", Amount: "125.50", Status: "pending"}, *invoices.createForm)
}

func TestCreateInvoice_Invalid(t *testing.T) {
	fieldErrors := errs.FieldErrors{}
	fieldErrors.Add("customerId", model.MsgSelectCustomer)
	invoices := &fakeInvoices{result: model.Invalid(fieldErrors, service.MsgCreateInvalid)}
	e := invoiceRoutes(invoices)

	rec := postForm(e, "/dashboard/invoices/create", url.Values{"amount": {"1"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, service.MsgCreateInvalid, state.Message)
	assert.Equal(t, []string{model.MsgSelectCustomer}, state.Errors["customerId"])
}

func TestCreateInvoice_Failed(t *testing.T) {
	invoices := &fakeInvoices{result: model.Failed(service.MsgCreateFailed)}
	e := invoiceRoutes(invoices)

	rec := postForm(e, "/dashboard/invoices/create", url.Values{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, service.MsgCreateFailed, state.Message)
	assert.Empty(t, state.Errors)
}

func TestUpdateInvoice_BindsPathAndForm(t *testing.T) {
	invoices := &fakeInvoices{result: model.Redirect("/dashboard/invoices")}
	e := invoiceRoutes(invoices)

	rec := postForm(e, "/dashboard/invoices/inv-42/edit", url.Values{
		"customerId": {"c2"},
		"amount":     {"10"},
		"status":     {"paid"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "inv-42", invoices.updateID)
	require.NotNil(t, invoices.updateForm)
	assert.Equal(t, model.InvoiceForm{CustomerID: "c2", Amount: "10", Status: "paid"}, *invoices.updateForm)
}

func TestDeleteInvoice(t *testing.T) {
	t.Run("disabled surfaces as server error", func(t *testing.T) {
		invoices := &fakeInvoices{deleteErr: service.ErrDeleteDisabled}
		e := invoiceRoutes(invoices)

		rec := postForm(e, "/dashboard/invoices/inv-1/delete", url.Values{})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "inv-1", invoices.deleteID)
	})

	t.Run("done", func(t *testing.T) {
		invoices := &fakeInvoices{result: model.Done()}
		e := invoiceRoutes(invoices)

		rec := postForm(e, "/dashboard/invoices/inv-1/delete", url.Values{})

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("failed", func(t *testing.T) {
		invoices := &fakeInvoices{result: model.Failed(service.MsgDeleteFailed)}
		e := invoiceRoutes(invoices)

		rec := postForm(e, "/dashboard/invoices/inv-1/delete", url.Values{})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, service.MsgDeleteFailed, decodeState(t, rec).Message)
	})
}

func TestHandleForm_MalformedBody(t *testing.T) {
	invoices := &fakeInvoices{result: model.Done()}
	e := invoiceRoutes(invoices)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/invoices/create", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, invoices.createForm)
}

func authRoutes(a Authenticator) *echo.Echo {
	h := NewAuthHandler(a, "session_token", true)
	e := newEcho()
	e.POST("/login", HandleForm(h.Login, http.StatusUnauthorized))
	e.POST("/logout", HandleForm(h.Logout, http.StatusInternalServerError))
	return e
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_Success(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	a := &fakeAuth{
		result:  model.Redirect("/dashboard"),
		session: &auth.Session{Token: "tok-1", UserID: "u1", ExpiresAt: expires},
	}
	e := authRoutes(a)

	rec := postForm(e, "/login", url.Values{
		"email":      {"user@nextmail.com"},
		"password":   {"123456"},
		"redirectTo": {"/dashboard"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "user@nextmail.com", a.form.Email)
	assert.Equal(t, "/dashboard", a.form.RedirectTo)

	cookie := findCookie(rec, "session_token")
	require.NotNil(t, cookie)
	assert.Equal(t, "tok-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, expires.Equal(cookie.Expires))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	a := &fakeAuth{result: model.Failed(service.MsgInvalidCredentials)}
	e := authRoutes(a)

	rec := postForm(e, "/login", url.Values{"email": {"user@nextmail.com"}, "password": {"wrong-pass"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.MsgInvalidCredentials, decodeState(t, rec).Message)
	assert.Nil(t, findCookie(rec, "session_token"))
}

func TestLogin_UnclassifiedError(t *testing.T) {
	a := &fakeAuth{err: errors.New("boom")}
	e := authRoutes(a)

	rec := postForm(e, "/login", url.Values{"email": {"user@nextmail.com"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogout(t *testing.T) {
	a := &fakeAuth{}
	e := authRoutes(a)

	rec := postForm(e, "/logout", url.Values{}, &http.Cookie{Name: "session_token", Value: "tok-1"})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "tok-1", a.loggedOut)

	cookie := findCookie(rec, "session_token")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestLogout_WithoutSession(t *testing.T) {
	a := &fakeAuth{}
	e := authRoutes(a)

	rec := postForm(e, "/logout", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, a.loggedOut)
}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]HealthCheck
		status int
		body   string
	}{
		{
			name: "all healthy",
			checks: map[string]HealthCheck{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return nil },
			},
			status: http.StatusOK,
			body:   "healthy",
		},
		{
			name: "redis down",
			checks: map[string]HealthCheck{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			status: http.StatusServiceUnavailable,
			body:   "unhealthy",
		},
		{
			name:   "no checks",
			checks: map[string]HealthCheck{},
			status: http.StatusOK,
			body:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{checks: tt.checks, timeout: time.Second, env: "test"}
			e := newEcho()
			e.GET("/status", h.CheckHealth)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

			assert.Equal(t, tt.status, rec.Code)

			var body struct {
				Status      string                    `json:"status"`
				Environment string                    `json:"environment"`
				Checks      map[string]map[string]any `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.body, body.Status)
			assert.Equal(t, "test", body.Environment)
			assert.Len(t, body.Checks, len(tt.checks))
			if tt.status == http.StatusServiceUnavailable {
				assert.Equal(t, "connection refused", body.Checks["redis"]["error"])
			}
		})
	}
}

func TestCheckHealth_Timeout(t *testing.T) {
	h := &HealthHandler{
		checks: map[string]HealthCheck{
			"database": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		},
		timeout: 10 * time.Millisecond,
	}
	e := newEcho()
	e.GET("/status", h.CheckHealth)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeOpenAPIUI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>docs</html>"), 0o600))

	h := &OpenAPIHandler{uiPath: path}
	e := newEcho()
	e.GET("/docs", h.ServeOpenAPIUI)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "docs")
}

func TestServeOpenAPIUI_Missing(t *testing.T) {
	h := &OpenAPIHandler{uiPath: filepath.Join(t.TempDir(), "missing.html")}
	e := newEcho()
	e.GET("/docs", h.ServeOpenAPIUI)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
