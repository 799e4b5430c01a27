// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/oliverandrich/jokebox/internal/appcontext"
	"codeberg.org/oliverandrich/jokebox/internal/assets"
	"codeberg.org/oliverandrich/jokebox/internal/auth"
	"codeberg.org/oliverandrich/jokebox/internal/htmx"
	"codeberg.org/oliverandrich/jokebox/internal/i18n"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/repository"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"github.com/labstack/echo/v4"
)

// UserLoader loads the account behind a session.
type UserLoader interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware loads the session user into the request.
// Sessions pointing at a deleted account are cleared.
func AuthMiddleware(sessions *session.Manager, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, assets.Prefix) {
				return next(c)
			}

			data, err := sessions.Parse(c.Request())
			if err != nil || data == nil {
				return next(c)
			}

			user, err := users.GetUserByID(c.Request().Context(), data.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					c.SetCookie(sessions.Clear())
				} else {
					slog.Error("failed to load session user", "user_id", data.UserID, "error", err)
				}
				return next(c)
			}

			c.SetRequest(c.Request().WithContext(auth.WithUser(c.Request().Context(), user)))
			if cc, ok := c.(*appcontext.Context); ok {
				cc.User = user
			}
			return next(c)
		}
	}
}

// RequireAuth sends anonymous visitors to the login page.
// GET requests remember where they were headed.
func RequireAuth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isAuthenticated(c) {
				return next(c)
			}

			req := c.Request()
			if sessions != nil {
				msg := i18n.T(req.Context(), "flash_login_required")
				if err := sessions.SetFlash(c.Response(), session.FlashInfo, msg); err != nil {
					slog.Warn("failed to set flash", "error", err)
				}
			}

			target := "/login"
			if req.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(req.URL.RequestURI())
			}

			if htmx.IsRequest(req) {
				htmx.Redirect(c.Response(), target)
				return c.NoContent(http.StatusOK)
			}
			return c.Redirect(http.StatusSeeOther, target)
		}
	}
}

func isAuthenticated(c echo.Context) bool {
	if cc, ok := c.(*appcontext.Context); ok && cc.IsAuthenticated() {
		return true
	}
	return auth.IsAuthenticated(c.Request().Context())
}

// flashMiddleware moves a pending flash message from its cookie into the
// request so the next rendered page can show it.
func flashMiddleware(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet || skipBrowserOnly(c) || htmx.IsRequest(req) {
				return next(c)
			}

			flash := sessions.PopFlash(c.Response(), req)
			if flash == nil {
				return next(c)
			}

			c.SetRequest(req.WithContext(context.WithValue(req.Context(), appcontext.Flash{}, flash)))
			if cc, ok := c.(*appcontext.Context); ok {
				cc.Flash = flash
			}
			return next(c)
		}
	}
}

// requireAuth is shorthand for route registration.
func (d *Deps) requireAuth() echo.MiddlewareFunc {
	return RequireAuth(d.Sessions)
}
