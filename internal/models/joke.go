// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

const (
	// DateFormat is used for the joined date of users.
	DateFormat = "2006-01-02"
	// DateTimeFormat is used for the creation time of jokes.
	DateTimeFormat = "2006-01-02 15:04"
	// MaxJokeLength is the maximum number of characters in a joke.
	MaxJokeLength = 500
	// UnknownAuthor is shown when a joke's author cannot be resolved.
	UnknownAuthor = "Unknown"
)

// Joke is a single joke owned by a user.
type Joke struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	Text      string    `db:"joke_text" json:"joke"`
	Category  string    `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Likes     int64     `db:"likes" json:"likes"`
	UserID    int64     `db:"user_id" json:"user_id"`

	// Author is filled by queries joining the users table.
	Author sql.NullString `db:"author" json:"-"`
}

// AuthorName returns the author's username or UnknownAuthor.
func (j *Joke) AuthorName() string {
	if j.Author.Valid && j.Author.String != "" {
		return j.Author.String
	}
	return UnknownAuthor
}

// JokeView is the public projection of a Joke.
type JokeView struct {
	ID        int64  `json:"id"`
	Joke      string `json:"joke"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
	Likes     int64  `json:"likes"`
	Author    string `json:"author"`
}

// View projects the joke for templates and the JSON API.
func (j *Joke) View() JokeView {
	return JokeView{
		ID:        j.ID,
		Joke:      j.Text,
		Category:  j.Category,
		CreatedAt: j.CreatedAt.Format(DateTimeFormat),
		Likes:     j.Likes,
		Author:    j.AuthorName(),
	}
}

// Views projects a slice of jokes.
func Views(jokes []Joke) []JokeView {
	views := make([]JokeView, len(jokes))
	for i := range jokes {
		views[i] = jokes[i].View()
	}
	return views
}
