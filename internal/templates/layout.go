// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"github.com/a-h/templ"
)

// HtmxURL is the htmx build loaded by every page.
const HtmxURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Layout wraps content in the base HTML document.
func Layout(title string, content templ.Component) templ.Component {
	return component(func(w *writer) {
		w.raw(`<!doctype html><html`)
		w.attr("lang", Locale(w.ctx))
		w.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		w.text(title)
		w.raw(" | ")
		w.t("app_name")
		w.raw(`</title><link rel="stylesheet"`)
		w.attr("href", CSSPath(w.ctx))
		w.raw(`><script`)
		w.attr("src", HtmxURL)
		w.raw(` defer></script><script`)
		w.attr("src", JSPath(w.ctx))
		w.raw(` defer></script></head><body`)
		w.attr("hx-headers", `{"X-CSRF-Token":"`+CSRFToken(w.ctx)+`"}`)
		w.raw(`>`)
		w.render(navbar())
		w.raw(`<main>`)
		w.render(flash())
		w.render(content)
		w.raw(`</main></body></html>`)
	})
}

func navbar() templ.Component {
	return component(func(w *writer) {
		w.raw(`<nav class="navbar"><a class="brand" href="/">`)
		w.t("app_name")
		w.raw(`</a>`)
		navLink(w, "/", "nav_home")
		navLink(w, "/browse", "nav_browse")
		if user := GetUser(w.ctx); user != nil {
			navLink(w, "/dashboard", "nav_dashboard")
			navLink(w, "/add-joke", "nav_add_joke")
			navLink(w, "/my-jokes", "nav_my_jokes")
			navLink(w, "/profile", "nav_profile")
			w.raw(`<form method="post" action="/logout">`)
			csrfField(w)
			w.raw(`<button type="submit">`)
			w.t("nav_logout")
			w.raw(` (`)
			w.text(user.Username)
			w.raw(`)</button></form>`)
		} else {
			navLink(w, "/login", "nav_login")
			navLink(w, "/register", "nav_register")
		}
		w.raw(`</nav>`)
	})
}

func navLink(w *writer, href, messageID string) {
	w.raw(`<a`)
	w.attr("href", href)
	if CurrentPath(w.ctx) == href {
		w.raw(` aria-current="page"`)
	}
	w.raw(`>`)
	w.t(messageID)
	w.raw(`</a>`)
}

func flash() templ.Component {
	return component(func(w *writer) {
		f := Flash(w.ctx)
		if f == nil {
			return
		}
		w.raw(`<div role="alert" data-flash`)
		w.attr("class", "flash flash-"+f.Kind)
		w.raw(`>`)
		w.text(f.Message)
		w.raw(`</div>`)
	})
}

func csrfField(w *writer) {
	w.raw(`<input type="hidden" name="csrf_token"`)
	w.attr("value", CSRFToken(w.ctx))
	w.raw(`>`)
}
