// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models_test

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"codeberg.org/oliverandrich/jokebox/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestJoke_View(t *testing.T) {
	joke := &models.Joke{
		ID:        7,
		Text:      "What do you call a fake noodle? An impasta!",
		Category:  models.CategoryDad,
		CreatedAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Likes:     3,
		UserID:    1,
		Author:    sql.NullString{String: "admin", Valid: true},
	}

	view := joke.View()

	assert.Equal(t, int64(7), view.ID)
	assert.Equal(t, "What do you call a fake noodle? An impasta!", view.Joke)
	assert.Equal(t, "dad", view.Category)
	assert.Equal(t, "2025-03-14 09:26", view.CreatedAt)
	assert.Equal(t, int64(3), view.Likes)
	assert.Equal(t, "admin", view.Author)
}

func TestJoke_View_MissingAuthor(t *testing.T) {
	joke := &models.Joke{ID: 1, Text: "orphan"}

	assert.Equal(t, models.UnknownAuthor, joke.View().Author)
}

func TestViews(t *testing.T) {
	jokes := []models.Joke{{ID: 1}, {ID: 2}}

	views := models.Views(jokes)

	assert.Len(t, views, 2)
	assert.Equal(t, int64(2), views[1].ID)
}

func TestUser_View(t *testing.T) {
	user := &models.User{
		ID:        4,
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Date(2024, 12, 1, 23, 0, 0, 0, time.UTC),
	}

	view := user.View(5)

	assert.Equal(t, models.UserView{
		ID:        4,
		Username:  "alice",
		Email:     "alice@example.com",
		JokeCount: 5,
		Joined:    "2024-12-01",
	}, view)
}

func TestIsKnownCategory(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"programming", true},
		{"dad", true},
		{"punny", true},
		{"knock-knock", true},
		{"general", true},
		{"other", true},
		{"Programming", false},
		{"limericks", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.IsKnownCategory(tt.value))
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Dad Jokes", models.CategoryLabel("dad"))
	assert.Equal(t, "limericks", models.CategoryLabel("limericks"))
}

func TestPage_Pages(t *testing.T) {
	tests := []struct {
		name     string
		page     models.Page
		expected int
	}{
		{"empty", models.Page{Total: 0, PerPage: 10}, 1},
		{"exact", models.Page{Total: 20, PerPage: 10}, 2},
		{"remainder", models.Page{Total: 21, PerPage: 10}, 3},
		{"single", models.Page{Total: 3, PerPage: 10}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.page.Pages())
		})
	}
}

func TestPage_Navigation(t *testing.T) {
	p := models.Page{Total: 25, PerPage: 10, Page: 2}

	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p.Page = 3
	assert.False(t, p.HasNext())

	p.Page = 1
	assert.False(t, p.HasPrev())
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, models.Offset(1, 10))
	assert.Equal(t, 20, models.Offset(3, 10))
	assert.Equal(t, 0, models.Offset(0, 10))
	assert.Equal(t, 0, models.Offset(-4, 10))
	assert.Equal(t, math.MaxInt, models.Offset(1<<62, 4))
	assert.Equal(t, math.MaxInt, models.Offset(math.MaxInt, 10))
	assert.Equal(t, math.MaxInt-1, models.Offset(math.MaxInt, 1))
}
