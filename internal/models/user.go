// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// User is a registered account. Jokes reference it through Joke.UserID.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
}

// UserView is the public projection of a User.
type UserView struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	JokeCount int64  `json:"joke_count"`
	Joined    string `json:"joined"`
}

// View projects the user with the given number of owned jokes.
func (u *User) View(jokeCount int64) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		JokeCount: jokeCount,
		Joined:    u.CreatedAt.Format(DateFormat),
	}
}
