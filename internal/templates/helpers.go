// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"

	"codeberg.org/oliverandrich/jokebox/internal/appcontext"
	"codeberg.org/oliverandrich/jokebox/internal/auth"
	"codeberg.org/oliverandrich/jokebox/internal/i18n"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
)

// value reads a middleware-provided value, falling back when it is absent.
func value[V any](ctx context.Context, key any, fallback V) V {
	if v, ok := ctx.Value(key).(V); ok {
		return v
	}
	return fallback
}

func CSRFToken(ctx context.Context) string {
	return value(ctx, appcontext.CSRFToken{}, "")
}

func CSSPath(ctx context.Context) string {
	return value(ctx, appcontext.CSSPath{}, "/static/css/styles.css")
}

func JSPath(ctx context.Context) string {
	return value(ctx, appcontext.JSPath{}, "/static/js/app.js")
}

// CurrentPath returns the request path, used for "next" links and nav highlighting.
func CurrentPath(ctx context.Context) string {
	return value(ctx, appcontext.Path{}, "/")
}

// Flash returns the flash message popped for this page view, if any.
func Flash(ctx context.Context) *session.Flash {
	return value[*session.Flash](ctx, appcontext.Flash{}, nil)
}

func T(ctx context.Context, messageID string) string {
	return i18n.T(ctx, messageID)
}

func TData(ctx context.Context, messageID string, data map[string]any) string {
	return i18n.TData(ctx, messageID, data)
}

func Locale(ctx context.Context) string {
	return i18n.GetLocale(ctx)
}

// GetUser returns the logged in user, or nil for anonymous visitors.
func GetUser(ctx context.Context) *models.User {
	return auth.GetUser(ctx)
}

func IsAuthenticated(ctx context.Context) bool {
	return auth.IsAuthenticated(ctx)
}
