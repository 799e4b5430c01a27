// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"net/url"

	"codeberg.org/oliverandrich/jokebox/internal/forms"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"github.com/a-h/templ"
)

// HomePage shows a random sample of jokes and the category overview.
func HomePage(sample []models.Joke, counts []models.CategoryCount) templ.Component {
	return component(func(w *writer) {
		w.raw(`<p class="tagline">`)
		w.t("app_tagline")
		w.raw(`</p>`)
		heading(w, "home_title")
		w.render(JokeList(sample, "home_empty"))
		if len(counts) > 0 {
			w.raw(`<h2>`)
			w.t("home_categories")
			w.raw(`</h2>`)
			w.render(CategoryLinks(counts))
		}
	})
}

// BrowsePage lists all jokes, optionally filtered by category.
func BrowsePage(page *models.Page, category string) templ.Component {
	return component(func(w *writer) {
		heading(w, "browse_title")
		w.raw(`<form method="get" action="/browse">`)
		categorySelect(w, "category", category, true)
		w.raw(` <button type="submit" class="btn btn-small">`)
		w.t("browse_filter")
		w.raw(`</button></form>`)
		w.render(JokeList(page.Items, "no_jokes"))

		query := url.Values{}
		if category != "" {
			query.Set("category", category)
		}
		w.render(Pagination(page, "/browse", query))
	})
}

// DashboardPage shows the user's jokes and their total likes.
func DashboardPage(items []models.Joke, totalLikes int64) templ.Component {
	return component(func(w *writer) {
		heading(w, "dashboard_title")
		w.raw(`<div class="stats"><div><strong>`)
		w.text(itoa(int64(len(items))))
		w.raw(`</strong>`)
		w.t("dashboard_total_jokes")
		w.raw(`</div><div><strong>`)
		w.text(itoa(totalLikes))
		w.raw(`</strong>`)
		w.t("dashboard_total_likes")
		w.raw(`</div></div><p><a class="btn" href="/add-joke">`)
		w.t("nav_add_joke")
		w.raw(`</a></p>`)
		w.render(JokeList(items, "dashboard_empty"))
	})
}

// MyJokesPage lists the user's jokes page by page.
func MyJokesPage(page *models.Page) templ.Component {
	return component(func(w *writer) {
		heading(w, "my_jokes_title")
		w.render(JokeList(page.Items, "dashboard_empty"))
		w.render(Pagination(page, "/my-jokes", nil))
	})
}

// ProfilePage shows the account details and the email form.
func ProfilePage(view models.UserView, form forms.ProfileForm, errs forms.Errors) templ.Component {
	return component(func(w *writer) {
		heading(w, "profile_title")
		w.raw(`<dl class="profile"><dt>`)
		w.t("field_username")
		w.raw(`</dt><dd>`)
		w.text(view.Username)
		w.raw(`</dd><dt>`)
		w.t("profile_joined")
		w.raw(`</dt><dd>`)
		w.text(view.Joined)
		w.raw(`</dd><dt>`)
		w.t("profile_joke_count")
		w.raw(`</dt><dd>`)
		w.text(itoa(view.JokeCount))
		w.raw(`</dd></dl>`)

		formStart(w, "/profile")
		input(w, errs, "email", "field_email", "email", form.Email)
		submit(w, "profile_save")
		w.raw(`</form>`)
	})
}
