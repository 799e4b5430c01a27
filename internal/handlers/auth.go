// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/jokebox/internal/forms"
	"codeberg.org/oliverandrich/jokebox/internal/i18n"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	authsvc "codeberg.org/oliverandrich/jokebox/internal/services/auth"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"codeberg.org/oliverandrich/jokebox/internal/templates"
	"github.com/labstack/echo/v4"
)

// WelcomeMailer sends the welcome email after registration.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, toEmail, username string) error
}

// AuthHandlers contains handlers for registration, login and logout.
type AuthHandlers struct {
	accounts *authsvc.Service
	sessions *session.Manager
	mailer   WelcomeMailer // nil when SMTP is not configured
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(accounts *authsvc.Service, sessions *session.Manager, mailer WelcomeMailer) *AuthHandlers {
	return &AuthHandlers{
		accounts: accounts,
		sessions: sessions,
		mailer:   mailer,
	}
}

// RegisterPage renders the registration page.
func (h *AuthHandlers) RegisterPage(c echo.Context) error {
	return RenderPage(c, http.StatusOK, "register_title", templates.RegisterPage(forms.RegisterForm{}, nil))
}

// Register creates an account and redirects to the login page.
func (h *AuthHandlers) Register(c echo.Context) error {
	var form forms.RegisterForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	form.Normalize()

	errs, err := forms.Check(c, &form)
	if err != nil {
		return err
	}
	if errs.Any() {
		return h.renderRegister(c, form, errs)
	}

	user, err := h.accounts.Register(c.Request().Context(), authsvc.RegisterParams{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	switch {
	case errors.Is(err, authsvc.ErrUsernameTaken):
		errs.Add("username", forms.MsgUsernameTaken)
		return h.renderRegister(c, form, errs)
	case errors.Is(err, authsvc.ErrEmailTaken):
		errs.Add("email", forms.MsgEmailTaken)
		return h.renderRegister(c, form, errs)
	case err != nil:
		return err
	}

	h.sendWelcome(c.Request().Context(), user)

	setFlash(c, h.sessions, session.FlashSuccess, "flash_registered", nil)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandlers) renderRegister(c echo.Context, form forms.RegisterForm, errs forms.Errors) error {
	return RenderPage(c, http.StatusUnprocessableEntity, "register_title", templates.RegisterPage(form, errs))
}

// sendWelcome mails the new user. Errors are logged and never fail the registration.
func (h *AuthHandlers) sendWelcome(ctx context.Context, user *models.User) {
	if h.mailer == nil {
		return
	}
	if err := h.mailer.SendWelcome(ctx, user.Email, user.Username); err != nil {
		slog.Error("failed to send welcome email", "error", err, "user_id", user.ID)
	}
}

// LoginPage renders the login page.
func (h *AuthHandlers) LoginPage(c echo.Context) error {
	form := forms.LoginForm{Next: SafeRedirect(c.QueryParam("next"), "")}
	return RenderPage(c, http.StatusOK, "login_title", templates.LoginPage(form, nil, ""))
}

// Login verifies the credentials and starts a session.
func (h *AuthHandlers) Login(c echo.Context) error {
	var form forms.LoginForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	form.Normalize()
	form.Next = SafeRedirect(form.Next, "")

	errs, err := forms.Check(c, &form)
	if err != nil {
		return err
	}
	if errs.Any() {
		return h.renderLogin(c, form, errs, "")
	}

	user, err := h.accounts.Login(c.Request().Context(), form.Username, form.Password)
	if errors.Is(err, authsvc.ErrInvalidCredentials) {
		return h.renderLogin(c, form, errs, i18n.T(c.Request().Context(), "login_failed"))
	}
	if err != nil {
		return err
	}

	cookie, err := h.sessions.Create(user.ID, user.Username)
	if err != nil {
		slog.Error("failed to create session", "error", err, "user_id", user.ID)
		return err
	}
	c.SetCookie(cookie)

	setFlash(c, h.sessions, session.FlashSuccess, "flash_logged_in", map[string]any{"Username": user.Username})
	return c.Redirect(http.StatusSeeOther, SafeRedirect(form.Next, "/dashboard"))
}

func (h *AuthHandlers) renderLogin(c echo.Context, form forms.LoginForm, errs forms.Errors, message string) error {
	return RenderPage(c, http.StatusUnprocessableEntity, "login_title", templates.LoginPage(form, errs, message))
}

// Logout clears the session cookie.
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	setFlash(c, h.sessions, session.FlashInfo, "flash_logged_out", nil)
	return c.Redirect(http.StatusSeeOther, "/")
}
