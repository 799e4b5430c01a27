// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"github.com/a-h/templ"
)

// NotFoundPage is shown for unknown routes and jokes.
func NotFoundPage() templ.Component {
	return errorPage("not_found_title", "not_found_message")
}

// ErrorPage is shown for unexpected failures.
func ErrorPage() templ.Component {
	return errorPage("error_title", "error_message")
}

func errorPage(titleID, messageID string) templ.Component {
	return component(func(w *writer) {
		heading(w, titleID)
		w.raw(`<p>`)
		w.t(messageID)
		w.raw(`</p><p><a href="/">`)
		w.t("back_home")
		w.raw(`</a></p>`)
	})
}
