// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates_test

import (
	"bytes"
	"context"
	"database/sql"
	"net/url"
	"testing"
	"time"

	"codeberg.org/oliverandrich/jokebox/internal/appcontext"
	"codeberg.org/oliverandrich/jokebox/internal/auth"
	"codeberg.org/oliverandrich/jokebox/internal/forms"
	"codeberg.org/oliverandrich/jokebox/internal/i18n"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"codeberg.org/oliverandrich/jokebox/internal/templates"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func baseContext() context.Context {
	ctx := i18n.WithLocale(context.Background(), language.English)
	return context.WithValue(ctx, appcontext.CSRFToken{}, "tok123")
}

func sampleJoke(owner int64) *models.Joke {
	return &models.Joke{
		ID:        7,
		Text:      "Why do programmers prefer dark mode? <Because light attracts bugs.>",
		Category:  models.CategoryProgramming,
		CreatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Likes:     3,
		UserID:    owner,
		Author:    sql.NullString{String: "alice", Valid: true},
	}
}

func TestLayout_Anonymous(t *testing.T) {
	html := render(t, baseContext(), templates.Layout("Home", templates.NotFoundPage()))

	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "<title>Home | Jokebox</title>")
	assert.Contains(t, html, `href="/login"`)
	assert.Contains(t, html, `href="/register"`)
	assert.NotContains(t, html, `action="/logout"`)
	assert.Contains(t, html, "tok123")
	assert.Contains(t, html, templates.HtmxURL)
}

func TestLayout_Authenticated(t *testing.T) {
	ctx := auth.WithUser(baseContext(), &models.User{ID: 1, Username: "alice"})

	html := render(t, ctx, templates.Layout("Home", templates.NotFoundPage()))

	assert.Contains(t, html, `action="/logout"`)
	assert.Contains(t, html, "(alice)")
	assert.Contains(t, html, `href="/dashboard"`)
	assert.NotContains(t, html, `href="/register"`)
}

func TestLayout_Flash(t *testing.T) {
	ctx := context.WithValue(baseContext(), appcontext.Flash{}, &session.Flash{Kind: session.FlashWarning, Message: "Careful <now>"})

	html := render(t, ctx, templates.Layout("Home", templates.NotFoundPage()))

	assert.Contains(t, html, `class="flash flash-warning"`)
	assert.Contains(t, html, "Careful &lt;now&gt;")
}

func TestLayout_German(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), language.German)

	html := render(t, ctx, templates.Layout("Start", templates.NotFoundPage()))

	assert.Contains(t, html, `<html lang="de">`)
	assert.Contains(t, html, "Anmelden")
	assert.Contains(t, html, "Seite nicht gefunden")
}

func TestJokeCard_EscapesText(t *testing.T) {
	html := render(t, baseContext(), templates.JokeCard(sampleJoke(1)))

	assert.Contains(t, html, "&lt;Because light attracts bugs.&gt;")
	assert.NotContains(t, html, "<Because")
	assert.Contains(t, html, "by alice")
	assert.Contains(t, html, "2025-03-01 09:30")
	assert.Contains(t, html, "Programming")
}

func TestJokeCard_Actions(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		wantLike   bool
		wantDelete bool
	}{
		{"anonymous", nil, false, false},
		{"owner", &models.User{ID: 1}, true, true},
		{"other user", &models.User{ID: 2}, true, false},
		{"admin", &models.User{ID: 3, IsAdmin: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := baseContext()
			if tt.user != nil {
				ctx = auth.WithUser(ctx, tt.user)
			}

			html := render(t, ctx, templates.JokeCard(sampleJoke(1)))

			assert.Equal(t, tt.wantLike, bytes.Contains([]byte(html), []byte(`hx-post="/joke/7/like"`)))
			assert.Equal(t, tt.wantDelete, bytes.Contains([]byte(html), []byte(`action="/joke/7/delete"`)))
			assert.Contains(t, html, "3 likes")
		})
	}
}

func TestLikeButton_Singular(t *testing.T) {
	joke := sampleJoke(1)
	joke.Likes = 1

	html := render(t, baseContext(), templates.LikeButton(joke))

	assert.Contains(t, html, `id="likes-7"`)
	assert.Contains(t, html, "1 like<")
}

func TestPagination(t *testing.T) {
	page := &models.Page{Total: 25, Page: 2, PerPage: 10}

	html := render(t, baseContext(), templates.Pagination(page, "/browse", url.Values{"category": {"dad"}}))

	assert.Contains(t, html, `href="/browse?category=dad&amp;page=1"`)
	assert.Contains(t, html, `href="/browse?category=dad&amp;page=3"`)
	assert.Contains(t, html, "Page 2 of 3")
}

func TestPagination_SinglePage(t *testing.T) {
	page := &models.Page{Total: 4, Page: 1, PerPage: 10}

	html := render(t, baseContext(), templates.Pagination(page, "/browse", nil))

	assert.Empty(t, html)
}

func TestRegisterPage_PreservesValuesButNotPasswords(t *testing.T) {
	form := forms.RegisterForm{Username: "bob", Email: "bob@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	errs := forms.Errors{"username": forms.MsgUsernameTaken}

	html := render(t, baseContext(), templates.RegisterPage(form, errs))

	assert.Contains(t, html, `value="bob"`)
	assert.Contains(t, html, `value="bob@example.com"`)
	assert.NotContains(t, html, "secret1")
	assert.Contains(t, html, "Username already taken. Choose another.")
	assert.Contains(t, html, `name="csrf_token" value="tok123"`)
}

func TestLoginPage_Message(t *testing.T) {
	form := forms.LoginForm{Username: "bob", Next: "/my-jokes"}

	html := render(t, baseContext(), templates.LoginPage(form, nil, "Invalid username or password."))

	assert.Contains(t, html, "Invalid username or password.")
	assert.Contains(t, html, `name="next" value="/my-jokes"`)
}

func TestAddJokePage_SelectsCategory(t *testing.T) {
	form := forms.JokeForm{Text: "Knock knock.", Category: models.CategoryKnockKnock}

	html := render(t, baseContext(), templates.AddJokePage(form, nil))

	assert.Contains(t, html, `<option value="knock-knock" selected>`)
	assert.Contains(t, html, "Knock knock.</textarea>")
}

func TestDashboardPage(t *testing.T) {
	html := render(t, baseContext(), templates.DashboardPage([]models.Joke{*sampleJoke(1)}, 42))

	assert.Contains(t, html, "<strong>1</strong>")
	assert.Contains(t, html, "<strong>42</strong>")
}

func TestDashboardPage_Empty(t *testing.T) {
	html := render(t, baseContext(), templates.DashboardPage(nil, 0))

	assert.Contains(t, html, "You have not added any jokes yet.")
}

func TestHomePage_Categories(t *testing.T) {
	counts := []models.CategoryCount{{Category: "dad", Count: 2}}

	html := render(t, baseContext(), templates.HomePage(nil, counts))

	assert.Contains(t, html, "No jokes yet.")
	assert.Contains(t, html, `href="/browse?category=dad"`)
	assert.Contains(t, html, "Dad Jokes (2)")
}

func TestProfilePage(t *testing.T) {
	view := models.UserView{Username: "alice", Email: "a@example.com", JokeCount: 4, Joined: "2025-01-02"}

	html := render(t, baseContext(), templates.ProfilePage(view, forms.ProfileForm{Email: "a@example.com"}, nil))

	assert.Contains(t, html, "alice")
	assert.Contains(t, html, "2025-01-02")
	assert.Contains(t, html, `value="a@example.com"`)
}
