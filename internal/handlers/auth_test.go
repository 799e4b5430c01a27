// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"codeberg.org/oliverandrich/jokebox/internal/handlers"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"codeberg.org/oliverandrich/jokebox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWelcome(_ context.Context, toEmail, username string) error {
	m.sent = append(m.sent, username+" <"+toEmail+">")
	return m.err
}

func (env *testEnv) authHandlers(mailer handlers.WelcomeMailer) *handlers.AuthHandlers {
	return handlers.NewAuth(env.accounts, env.sessions, mailer)
}

func registerValues(username, email string) url.Values {
	return url.Values{
		"username":         {username},
		"email":            {email},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	}
}

func TestRegisterPage(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	c := newTestContext(env.e, httptest.NewRequest(http.MethodGet, "/register", nil), rec, nil)

	require.NoError(t, env.authHandlers(nil).RegisterPage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="confirm_password"`)
}

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}

	rec := httptest.NewRecorder()
	c := newTestContext(env.e, formRequest("/register", registerValues("newbie", "newbie@example.com")), rec, nil)

	require.NoError(t, env.authHandlers(mailer).Register(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	user, err := env.repo.GetUserByUsername(context.Background(), "newbie")
	require.NoError(t, err)
	assert.Equal(t, "newbie@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	assert.Equal(t, []string{"newbie <newbie@example.com>"}, mailer.sent)

	flash := popFlash(env.sessions, rec)
	require.NotNil(t, flash)
	assert.Equal(t, session.FlashSuccess, flash.Kind)
	assert.Equal(t, "Registration successful! Please log in.", flash.Message)
}

func TestRegister_MailFailureStillRegisters(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{err: errors.New("smtp down")}

	rec := httptest.NewRecorder()
	c := newTestContext(env.e, formRequest("/register", registerValues("newbie", "newbie@example.com")), rec, nil)

	require.NoError(t, env.authHandlers(mailer).Register(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	exists, err := env.repo.UsernameExists(context.Background(), "newbie")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	testutil.NewTestUser(t, env.repo, "taken")

	rec := httptest.NewRecorder()
	c := newTestContext(env.e, formRequest("/register", registerValues("taken", "fresh@example.com")), rec, nil)

	require.NoError(t, env.authHandlers(nil).Register(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Username already taken. Choose another.")
	assert.Contains(t, body, `value="fresh@example.com"`)
	assert.NotContains(t, body, "secret1")

	exists, err := env.repo.EmailExists(context.Background(), "fresh@example.com", 0)
	require.NoError(t, err)
	assert.False(t, exists, "no new account may be created")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	testutil.NewTestUser(t, env.repo, "existing")

	rec := httptest.NewRecorder()
	c := newTestContext(env.e, formRequest("/register", registerValues("another", "existing@example.com")), rec, nil)

	require.NoError(t, env.authHandlers(nil).Register(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered. Please login instead.")

	exists, err := env.repo.UsernameExists(context.Background(), "another")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegister_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	values := url.Values{
		"username":         {"ab"},
		"email":            {"not-an-email"},
		"password":         {"12345"},
		"confirm_password": {"54321"},
	}

	rec := httptest.NewRecorder()
	c := newTestContext(env.e, formRequest("/register", values), rec, nil)

	require.NoError(t, env.authHandlers(nil).Register(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Field must be at least 3 characters long.")
	assert.Contains(t, body, "Invalid email address.")
	assert.Contains(t, body, "Field must be at least 6 characters long.")
	assert.Contains(t, body, "Passwords must match.")
}

func TestLoginPage_KeepsLocalNext(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		target   string
		expected string
	}{
		{"/login?next=%2Fmy-jokes", `name="next" value="/my-jokes"`},
		{"/login?next=https%3A%2F%2Fevil.example", ""},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c := newTestContext(env.e, httptest.NewRequest(http.MethodGet, tt.target, nil), rec, nil)

		require.NoError(t, env.authHandlers(nil).LoginPage(c))

		if tt.expected != "" {
			assert.Contains(t, rec.Body.String(), tt.expected)
		} else {
			assert.NotContains(t, rec.Body.String(), `name="next"`)
		}
	}
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.NewTestUser(t, env.repo, "alice")

	tests := []struct {
		name     string
		next     string
		expected string
	}{
		{"default", "", "/dashboard"},
		{"next", "/my-jokes", "/my-jokes"},
		{"external next", "//evil.example", "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{"username": {"alice"}, "password": {testutil.TestPassword}, "next": {tt.next}}
			rec := httptest.NewRecorder()
			c := newTestContext(env.e, formRequest("/login", values), rec, nil)

			require.NoError(t, env.authHandlers(nil).Login(c))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.expected, rec.Header().Get("Location"))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, cookie := range rec.Result().Cookies() {
				req.AddCookie(cookie)
			}
			data, err := env.sessions.Parse(req)
			require.NoError(t, err)
			require.NotNil(t, data)
			assert.Equal(t, user.ID, data.UserID)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	testutil.NewTestUser(t, env.repo, "alice")

	for _, values := range []url.Values{
		{"username": {"alice"}, "password": {"wrong-password"}},
		{"username": {"nobody"}, "password": {"whatever"}},
	} {
		rec := httptest.NewRecorder()
		c := newTestContext(env.e, formRequest("/login", values), rec, nil)

		require.NoError(t, env.authHandlers(nil).Login(c))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid username or password.")
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	c := newTestContext(env.e, formRequest("/login", url.Values{}), rec, nil)

	require.NoError(t, env.authHandlers(nil).Login(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.NewTestUser(t, env.repo, "alice")

	rec := httptest.NewRecorder()
	c := newTestContext(env.e, formRequest("/logout", url.Values{}), rec, user)

	require.NoError(t, env.authHandlers(nil).Logout(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "_test_session" {
			cleared = cookie.MaxAge < 0 && cookie.Value == ""
		}
	}
	assert.True(t, cleared, "session cookie should be cleared")

	flash := popFlash(env.sessions, rec)
	require.NotNil(t, flash)
	assert.Equal(t, "You have been logged out.", flash.Message)
}
