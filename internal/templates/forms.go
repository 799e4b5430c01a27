// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"codeberg.org/oliverandrich/jokebox/internal/forms"
	"github.com/a-h/templ"
)

func formStart(w *writer, action string) {
	w.raw(`<form class="stacked" method="post" novalidate`)
	w.attr("action", action)
	w.raw(`>`)
	csrfField(w)
}

func label(w *writer, name, messageID string) {
	w.raw(`<label`)
	w.attr("for", name)
	w.raw(`>`)
	w.t(messageID)
	w.raw(`</label>`)
}

func fieldError(w *writer, errs forms.Errors, name string) {
	if msg := errs.Get(name); msg != "" {
		w.raw(`<span class="field-error"`)
		w.attr("id", name+"-error")
		w.raw(`>`)
		w.text(msg)
		w.raw(`</span>`)
	}
}

// input renders a labelled input. Pass an empty value for password fields.
func input(w *writer, errs forms.Errors, name, messageID, inputType, value string) {
	label(w, name, messageID)
	w.raw(`<input`)
	w.attr("id", name)
	w.attr("name", name)
	w.attr("type", inputType)
	if value != "" {
		w.attr("value", value)
	}
	if errs.Get(name) != "" {
		w.raw(` aria-invalid="true"`)
	}
	w.raw(`>`)
	fieldError(w, errs, name)
}

func submit(w *writer, messageID string) {
	w.raw(`<button type="submit" class="btn">`)
	w.t(messageID)
	w.raw(`</button>`)
}

func heading(w *writer, messageID string) {
	w.raw(`<h1>`)
	w.t(messageID)
	w.raw(`</h1>`)
}

// LoginPage renders the login form. message is shown above the form when set.
func LoginPage(form forms.LoginForm, errs forms.Errors, message string) templ.Component {
	return component(func(w *writer) {
		heading(w, "login_title")
		if message != "" {
			w.raw(`<div class="flash flash-danger" role="alert">`)
			w.text(message)
			w.raw(`</div>`)
		}
		formStart(w, "/login")
		if form.Next != "" {
			w.raw(`<input type="hidden" name="next"`)
			w.attr("value", form.Next)
			w.raw(`>`)
		}
		input(w, errs, "username", "field_username", "text", form.Username)
		input(w, errs, "password", "field_password", "password", "")
		submit(w, "login_submit")
		w.raw(`</form><p><a href="/register">`)
		w.t("login_no_account")
		w.raw(`</a></p>`)
	})
}

// RegisterPage renders the registration form.
func RegisterPage(form forms.RegisterForm, errs forms.Errors) templ.Component {
	return component(func(w *writer) {
		heading(w, "register_title")
		formStart(w, "/register")
		input(w, errs, "username", "field_username", "text", form.Username)
		input(w, errs, "email", "field_email", "email", form.Email)
		input(w, errs, "password", "field_password", "password", "")
		input(w, errs, "confirm_password", "field_confirm_password", "password", "")
		submit(w, "register_submit")
		w.raw(`</form><p><a href="/login">`)
		w.t("register_have_account")
		w.raw(`</a></p>`)
	})
}

// AddJokePage renders the new joke form.
func AddJokePage(form forms.JokeForm, errs forms.Errors) templ.Component {
	return component(func(w *writer) {
		heading(w, "add_joke_title")
		formStart(w, "/add-joke")
		label(w, "joke_text", "field_joke_text")
		w.raw(`<textarea id="joke_text" name="joke_text" rows="5" maxlength="500">`)
		w.text(form.Text)
		w.raw(`</textarea>`)
		fieldError(w, errs, "joke_text")
		label(w, "category", "field_category")
		categorySelect(w, "category", form.Category, false)
		fieldError(w, errs, "category")
		submit(w, "add_joke_submit")
		w.raw(`</form>`)
	})
}
