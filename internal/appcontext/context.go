// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package appcontext holds the per-request state shared by middleware,
// handlers and templates.
package appcontext

import (
	"codeberg.org/oliverandrich/jokebox/internal/htmx"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"github.com/labstack/echo/v4"
)

// Keys for values the templates read from the request context.
type (
	CSRFToken struct{}
	CSSPath   struct{}
	JSPath    struct{}
	User      struct{}
	Flash     struct{}
	// Path is the request path, used to highlight the active nav entry.
	Path struct{}
)

// Assets holds the fingerprinted URLs of the stylesheet and script.
type Assets struct {
	CSSPath string
	JSPath  string
}

// Context wraps echo.Context for every request that passes the
// customContext middleware.
type Context struct {
	echo.Context
	Htmx   *htmx.Request
	Assets *Assets
	User   *models.User // nil for anonymous visitors
	Flash  *session.Flash
}

// IsAuthenticated reports whether a user is logged in.
func (c *Context) IsAuthenticated() bool {
	return c.User != nil
}

// IsHtmx reports whether the request was issued by htmx.
func (c *Context) IsHtmx() bool {
	return c.Htmx != nil && c.Htmx.IsHtmx
}
