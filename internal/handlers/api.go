// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/jokebox/internal/config"
	"codeberg.org/oliverandrich/jokebox/internal/forms"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/services/jokes"
	"github.com/labstack/echo/v4"
)

// HeaderAPIKey is accepted as an alternative to a bearer token.
const HeaderAPIKey = "X-API-Key"

// API error messages.
const (
	MsgNoJokes      = "No jokes found"
	MsgInvalidBody  = "Invalid JSON body"
	MsgUnauthorized = "Unauthorized"
)

// APIHandlers contains the JSON API handlers.
type APIHandlers struct {
	jokes            *jokes.Service
	token            string
	strictCategories bool
}

// NewAPI creates a new APIHandlers instance.
func NewAPI(jokeSvc *jokes.Service, cfg config.APIConfig) *APIHandlers {
	return &APIHandlers{
		jokes:            jokeSvc,
		token:            cfg.Token,
		strictCategories: cfg.StrictCategories,
	}
}

// JokeList is the response of GET /api/jokes.
type JokeList struct {
	Jokes   []models.JokeView `json:"jokes"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Pages   int               `json:"pages"`
}

// CategoryList is the response of GET /api/categories.
type CategoryList struct {
	Categories []models.CategoryCount `json:"categories"`
	Count      int                    `json:"count"`
}

func apiError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// RandomJoke returns a random joke, optionally limited to one category.
func (h *APIHandlers) RandomJoke(c echo.Context) error {
	category := strings.TrimSpace(c.QueryParam("category"))

	joke, err := h.jokes.Random(c.Request().Context(), category)
	if errors.Is(err, jokes.ErrNoJokes) {
		return apiError(c, http.StatusNotFound, MsgNoJokes)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, joke.View())
}

// ListJokes returns one page of jokes, newest first.
func (h *APIHandlers) ListJokes(c echo.Context) error {
	page, err := h.jokes.List(c.Request().Context(), jokes.ListParams{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Page:     intParam(c, "page"),
		PerPage:  intParam(c, "per_page"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, JokeList{
		Jokes:   models.Views(page.Items),
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
		Pages:   page.Pages(),
	})
}

// CreateJoke stores a joke attributed to the admin account.
func (h *APIHandlers) CreateJoke(c echo.Context) error {
	if !h.authorized(c.Request()) {
		return apiError(c, http.StatusUnauthorized, MsgUnauthorized)
	}

	var body forms.APIJoke
	if err := c.Bind(&body); err != nil {
		return apiError(c, http.StatusBadRequest, MsgInvalidBody)
	}
	body.Normalize()

	errs, err := forms.Check(c, &body)
	if err != nil {
		return err
	}
	if errs.Any() {
		return apiError(c, http.StatusBadRequest, forms.APIError(errs))
	}
	if h.strictCategories && !models.IsKnownCategory(body.Category) {
		return apiError(c, http.StatusBadRequest, forms.MsgUnknownCategory)
	}

	joke, err := h.jokes.CreateFromAPI(c.Request().Context(), body.Joke, body.Category)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, joke.View())
}

// Categories returns the stored categories with their joke counts.
func (h *APIHandlers) Categories(c echo.Context) error {
	counts, err := h.jokes.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CategoryList{Categories: counts, Count: len(counts)})
}

// authorized checks the optional API token.
func (h *APIHandlers) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	given := r.Header.Get(HeaderAPIKey)
	if bearer, ok := strings.CutPrefix(r.Header.Get(echo.HeaderAuthorization), "Bearer "); ok {
		given = bearer
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(h.token)) == 1
}
