// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package forms

import "strings"

// Messages reported by uniqueness checks against stored accounts.
const (
	MsgUsernameTaken = "Username already taken. Choose another."
	MsgEmailTaken    = "Email already registered. Please login instead."
	MsgEmailInUse    = "Email already in use by another account."
)

// Messages for the JSON API.
const (
	MsgMissingFields   = "Missing joke or category"
	MsgJokeTooLong     = "Joke must be at most 500 characters"
	MsgUnknownCategory = "Unknown category"
	MsgCategoryTooLong = "Category must be at most 50 characters"
)

type RegisterForm struct {
	Username        string `form:"username" validate:"required,min=3,max=20"`
	Email           string `form:"email" validate:"required,email,max=120"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

func (f *RegisterForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

type JokeForm struct {
	Text     string `form:"joke_text" validate:"required,max=500"`
	Category string `form:"category" validate:"required,category"`
}

func (f *JokeForm) Normalize() {
	f.Text = strings.TrimSpace(f.Text)
	f.Category = strings.TrimSpace(f.Category)
}

type ProfileForm struct {
	Email string `form:"email" validate:"required,email,max=120"`
}

func (f *ProfileForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// APIJoke is the JSON body of POST /api/jokes.
type APIJoke struct {
	Joke     string `json:"joke" validate:"required,max=500"`
	Category string `json:"category" validate:"required,max=50"`
}

func (f *APIJoke) Normalize() {
	f.Joke = strings.TrimSpace(f.Joke)
	f.Category = strings.TrimSpace(f.Category)
}

// APIError maps API validation errors to a single message.
func APIError(errs Errors) string {
	for _, field := range []string{"joke", "category"} {
		if errs.Get(field) == "This field is required." {
			return MsgMissingFields
		}
	}
	if errs.Get("joke") != "" {
		return MsgJokeTooLong
	}
	return MsgCategoryTooLong
}
