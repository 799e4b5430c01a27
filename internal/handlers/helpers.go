// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"codeberg.org/oliverandrich/jokebox/internal/appcontext"
	"codeberg.org/oliverandrich/jokebox/internal/auth"
	"codeberg.org/oliverandrich/jokebox/internal/htmx"
	"codeberg.org/oliverandrich/jokebox/internal/i18n"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"codeberg.org/oliverandrich/jokebox/internal/templates"
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render renders a templ component with the given status code.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(c.Request().Context(), buf); err != nil {
		return err
	}

	return c.HTML(statusCode, buf.String())
}

// RenderPage renders component inside the layout with a translated title.
func RenderPage(c echo.Context, statusCode int, titleID string, component templ.Component) error {
	title := i18n.T(c.Request().Context(), titleID)
	return Render(c, statusCode, templates.Layout(title, component))
}

// currentUser returns the authenticated user from the custom context,
// falling back to the request context.
func currentUser(c echo.Context) *models.User {
	if cc, ok := c.(*appcontext.Context); ok && cc.User != nil {
		return cc.User
	}
	return auth.GetUser(c.Request().Context())
}

func isHtmx(c echo.Context) bool {
	if cc, ok := c.(*appcontext.Context); ok && cc.Htmx != nil {
		return cc.IsHtmx()
	}
	return htmx.IsRequest(c.Request())
}

// setFlash stores a translated flash message. Failures only lose the message.
func setFlash(c echo.Context, sessions *session.Manager, kind, messageID string, data map[string]any) {
	msg := i18n.TData(c.Request().Context(), messageID, data)
	if err := sessions.SetFlash(c.Response(), kind, msg); err != nil {
		slog.Warn("failed to set flash", "error", err)
	}
}

// SafeRedirect returns target when it is a local path, otherwise fallback.
func SafeRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}

// redirectBack redirects to the referring page on this site, or fallback.
func redirectBack(c echo.Context, fallback string) error {
	target := fallback
	if ref, err := url.Parse(c.Request().Referer()); err == nil && ref.Path != "" {
		if ref.Host == "" || ref.Host == c.Request().Host {
			target = SafeRedirect(ref.RequestURI(), fallback)
		}
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func jokeID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return id, nil
}

// intParam parses a query parameter, returning 0 when absent or malformed.
func intParam(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
