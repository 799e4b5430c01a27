// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/jokebox/internal/templates"
	"github.com/labstack/echo/v4"
)

// IsAPIPath reports whether path belongs to the JSON API.
func IsAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// HTTPErrorHandler renders errors as JSON on API routes and as pages elsewhere.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = http.StatusText(code)
		if m, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
			message = m
		}
	}

	if code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			"error", err,
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	if IsAPIPath(c.Request().URL.Path) {
		_ = apiError(c, code, message)
		return
	}

	titleID, page := "error_title", templates.ErrorPage()
	if code == http.StatusNotFound {
		titleID, page = "not_found_title", templates.NotFoundPage()
	}
	if renderErr := RenderPage(c, code, titleID, page); renderErr != nil {
		slog.Error("failed to render error page", "error", renderErr)
	}
}
