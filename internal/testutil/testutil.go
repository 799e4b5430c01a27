// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/oliverandrich/jokebox/internal/database"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext password of users created by NewTestUser.
const TestPassword = "secret123"

// TestHashKey is a valid 32-byte hex-encoded session key.
const TestHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a regular test user with TestPassword.
func NewTestUser(t *testing.T, repo *repository.Repository, username string) *models.User {
	t.Helper()
	return createUser(t, repo, username, false)
}

// NewTestAdmin creates an admin test user with TestPassword.
func NewTestAdmin(t *testing.T, repo *repository.Repository, username string) *models.User {
	t.Helper()
	return createUser(t, repo, username, true)
}

func createUser(t *testing.T, repo *repository.Repository, username string, isAdmin bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewTestJoke creates a joke owned by userID.
func NewTestJoke(t *testing.T, repo *repository.Repository, userID int64, category, text string) *models.Joke {
	t.Helper()
	joke := &models.Joke{
		Text:     text,
		Category: category,
		UserID:   userID,
	}
	require.NoError(t, repo.CreateJoke(context.Background(), joke))
	return joke
}

// NewTestJokeAt creates a joke with an explicit creation time.
func NewTestJokeAt(t *testing.T, repo *repository.Repository, userID int64, category, text string, at time.Time) *models.Joke {
	t.Helper()
	joke := &models.Joke{
		Text:      text,
		Category:  category,
		UserID:    userID,
		CreatedAt: at.UTC(),
	}
	require.NoError(t, repo.CreateJoke(context.Background(), joke))
	return joke
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
