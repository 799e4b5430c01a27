// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/jokebox/internal/forms"
	authsvc "codeberg.org/oliverandrich/jokebox/internal/services/auth"
	"codeberg.org/oliverandrich/jokebox/internal/services/jokes"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"codeberg.org/oliverandrich/jokebox/internal/templates"
	"github.com/labstack/echo/v4"
)

// Handlers contains the HTML page handlers.
type Handlers struct {
	jokes    *jokes.Service
	accounts *authsvc.Service
	sessions *session.Manager
}

// New creates a new Handlers instance.
func New(jokeSvc *jokes.Service, accounts *authsvc.Service, sessions *session.Manager) *Handlers {
	return &Handlers{
		jokes:    jokeSvc,
		accounts: accounts,
		sessions: sessions,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders a random sample of jokes and the category overview.
func (h *Handlers) Home(c echo.Context) error {
	ctx := c.Request().Context()

	sample, err := h.jokes.Sample(ctx, jokes.SampleSize)
	if err != nil {
		return err
	}
	counts, err := h.jokes.Categories(ctx)
	if err != nil {
		return err
	}

	return RenderPage(c, http.StatusOK, "nav_home", templates.HomePage(sample, counts))
}

// Browse lists all jokes page by page, optionally filtered by category.
func (h *Handlers) Browse(c echo.Context) error {
	category := strings.TrimSpace(c.QueryParam("category"))

	page, err := h.jokes.List(c.Request().Context(), jokes.ListParams{
		Category: category,
		Page:     intParam(c, "page"),
	})
	if err != nil {
		return err
	}

	return RenderPage(c, http.StatusOK, "browse_title", templates.BrowsePage(page, category))
}

// Dashboard shows the current user's jokes and total likes.
func (h *Handlers) Dashboard(c echo.Context) error {
	user := currentUser(c)

	d, err := h.jokes.Dashboard(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return RenderPage(c, http.StatusOK, "dashboard_title", templates.DashboardPage(d.Jokes, d.TotalLikes))
}

// AddJokePage renders the new joke form.
func (h *Handlers) AddJokePage(c echo.Context) error {
	return RenderPage(c, http.StatusOK, "add_joke_title", templates.AddJokePage(forms.JokeForm{}, nil))
}

// AddJoke stores a joke owned by the current user.
func (h *Handlers) AddJoke(c echo.Context) error {
	var form forms.JokeForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	form.Normalize()

	errs, err := forms.Check(c, &form)
	if err != nil {
		return err
	}
	if errs.Any() {
		return RenderPage(c, http.StatusUnprocessableEntity, "add_joke_title", templates.AddJokePage(form, errs))
	}

	if _, err := h.jokes.Create(c.Request().Context(), currentUser(c).ID, form.Text, form.Category); err != nil {
		return err
	}

	setFlash(c, h.sessions, session.FlashSuccess, "flash_joke_added", nil)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// MyJokes lists the current user's jokes page by page.
func (h *Handlers) MyJokes(c echo.Context) error {
	page, err := h.jokes.List(c.Request().Context(), jokes.ListParams{
		OwnerID: currentUser(c).ID,
		Page:    intParam(c, "page"),
	})
	if err != nil {
		return err
	}

	return RenderPage(c, http.StatusOK, "my_jokes_title", templates.MyJokesPage(page))
}

// DeleteJoke removes a joke owned by the current user, or any joke for admins.
func (h *Handlers) DeleteJoke(c echo.Context) error {
	id, err := jokeID(c)
	if err != nil {
		return err
	}

	err = h.jokes.Delete(c.Request().Context(), currentUser(c), id)
	switch {
	case errors.Is(err, jokes.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	case errors.Is(err, jokes.ErrForbidden):
		setFlash(c, h.sessions, session.FlashWarning, "flash_delete_forbidden", nil)
		return redirectBack(c, "/dashboard")
	case err != nil:
		return err
	}

	setFlash(c, h.sessions, session.FlashSuccess, "flash_joke_deleted", nil)
	return redirectBack(c, "/dashboard")
}

// LikeJoke adds a like. htmx requests receive the updated like fragment.
func (h *Handlers) LikeJoke(c echo.Context) error {
	id, err := jokeID(c)
	if err != nil {
		return err
	}

	joke, err := h.jokes.Like(c.Request().Context(), id)
	if errors.Is(err, jokes.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	if isHtmx(c) {
		return Render(c, http.StatusOK, templates.LikeButton(joke))
	}

	setFlash(c, h.sessions, session.FlashSuccess, "flash_joke_liked", nil)
	return redirectBack(c, "/browse")
}

// ProfilePage shows the current user's account details.
func (h *Handlers) ProfilePage(c echo.Context) error {
	user := currentUser(c)
	return h.renderProfile(c, http.StatusOK, forms.ProfileForm{Email: user.Email}, nil)
}

// UpdateProfile changes the current user's email address.
func (h *Handlers) UpdateProfile(c echo.Context) error {
	var form forms.ProfileForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	form.Normalize()

	errs, err := forms.Check(c, &form)
	if err != nil {
		return err
	}
	if errs.Any() {
		return h.renderProfile(c, http.StatusUnprocessableEntity, form, errs)
	}

	err = h.accounts.UpdateEmail(c.Request().Context(), currentUser(c).ID, form.Email)
	if errors.Is(err, authsvc.ErrEmailTaken) {
		errs.Add("email", forms.MsgEmailInUse)
		return h.renderProfile(c, http.StatusUnprocessableEntity, form, errs)
	}
	if err != nil {
		return err
	}

	setFlash(c, h.sessions, session.FlashSuccess, "flash_profile_updated", nil)
	return c.Redirect(http.StatusSeeOther, "/profile")
}

func (h *Handlers) renderProfile(c echo.Context, status int, form forms.ProfileForm, errs forms.Errors) error {
	view, err := h.jokes.Profile(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return RenderPage(c, status, "profile_title", templates.ProfilePage(view, form, errs))
}
