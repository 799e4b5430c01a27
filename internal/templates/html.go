// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package templates contains the templ components for all HTML pages.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so components can emit markup
// without checking every call.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx, w: out}
		fn(w)
		return w.err
	})
}

// raw writes trusted markup.
func (w *writer) raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

// text writes escaped text.
func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// t writes a translated and escaped message.
func (w *writer) t(messageID string) {
	w.text(T(w.ctx, messageID))
}

// attr writes ` name="value"` with the value escaped.
func (w *writer) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (w *writer) render(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, w.w)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
