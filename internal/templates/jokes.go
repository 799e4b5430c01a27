// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"net/url"
	"strconv"

	"codeberg.org/oliverandrich/jokebox/internal/auth"
	"codeberg.org/oliverandrich/jokebox/internal/i18n"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"github.com/a-h/templ"
)

// JokeList renders jokes as cards, or the empty message.
func JokeList(jokes []models.Joke, emptyMessageID string) templ.Component {
	return component(func(w *writer) {
		if len(jokes) == 0 {
			w.raw(`<p class="empty">`)
			w.t(emptyMessageID)
			w.raw(`</p>`)
			return
		}
		w.raw(`<div class="jokes">`)
		for i := range jokes {
			w.render(JokeCard(&jokes[i]))
		}
		w.raw(`</div>`)
	})
}

// JokeCard renders a single joke with its like and delete actions.
func JokeCard(joke *models.Joke) templ.Component {
	return component(func(w *writer) {
		view := joke.View()
		w.raw(`<article class="joke"`)
		w.attr("id", "joke-"+itoa(joke.ID))
		w.raw(`><p>`)
		w.text(view.Joke)
		w.raw(`</p><div class="meta"><a class="badge"`)
		w.attr("href", "/browse?category="+url.QueryEscape(view.Category))
		w.raw(`>`)
		w.text(models.CategoryLabel(view.Category))
		w.raw(`</a> `)
		w.text(TData(w.ctx, "joke_by", map[string]any{"Author": view.Author}))
		w.raw(` &middot; <time>`)
		w.text(view.CreatedAt)
		w.raw(`</time></div><div class="actions">`)
		w.render(LikeButton(joke))
		if auth.CanDelete(GetUser(w.ctx), joke) {
			w.raw(`<form method="post"`)
			w.attr("action", "/joke/"+itoa(joke.ID)+"/delete")
			w.attr("data-confirm", T(w.ctx, "joke_delete_confirm"))
			w.raw(`>`)
			csrfField(w)
			w.raw(`<button type="submit" class="btn btn-danger btn-small">`)
			w.t("joke_delete")
			w.raw(`</button></form>`)
		}
		w.raw(`</div></article>`)
	})
}

// LikeButton renders the like count, with a like form for logged-in users.
// It doubles as the htmx fragment returned after a like.
func LikeButton(joke *models.Joke) templ.Component {
	return component(func(w *writer) {
		id := "likes-" + itoa(joke.ID)
		if !IsAuthenticated(w.ctx) {
			w.raw(`<span class="likes"`)
			w.attr("id", id)
			w.raw(`>`)
			w.text(likes(w, joke.Likes))
			w.raw(`</span>`)
			return
		}

		action := "/joke/" + itoa(joke.ID) + "/like"
		w.raw(`<form method="post" hx-target="this" hx-swap="outerHTML"`)
		w.attr("id", id)
		w.attr("action", action)
		w.attr("hx-post", action)
		w.raw(`>`)
		csrfField(w)
		w.raw(`<button type="submit" class="btn btn-small">`)
		w.t("joke_like")
		w.raw(`</button> <span class="likes">`)
		w.text(likes(w, joke.Likes))
		w.raw(`</span></form>`)
	})
}

func likes(w *writer, n int64) string {
	return i18n.TPlural(w.ctx, "joke_likes", int(n))
}

// Pagination renders previous/next links keeping the other query values.
func Pagination(page *models.Page, path string, query url.Values) templ.Component {
	return component(func(w *writer) {
		if page.Pages() <= 1 {
			return
		}
		link := func(n int) string {
			q := url.Values{}
			for k, v := range query {
				q[k] = v
			}
			q.Set("page", strconv.Itoa(n))
			return path + "?" + q.Encode()
		}

		w.raw(`<nav class="pagination">`)
		if page.HasPrev() {
			w.raw(`<a rel="prev"`)
			w.attr("href", link(page.Page-1))
			w.raw(`>`)
			w.t("pagination_prev")
			w.raw(`</a>`)
		}
		w.raw(`<span>`)
		w.text(TData(w.ctx, "pagination_page", map[string]any{"Page": page.Page, "Pages": page.Pages()}))
		w.raw(`</span>`)
		if page.HasNext() {
			w.raw(`<a rel="next"`)
			w.attr("href", link(page.Page+1))
			w.raw(`>`)
			w.t("pagination_next")
			w.raw(`</a>`)
		}
		w.raw(`</nav>`)
	})
}

// CategoryLinks renders the stored categories with their joke counts.
func CategoryLinks(counts []models.CategoryCount) templ.Component {
	return component(func(w *writer) {
		w.raw(`<ul class="categories">`)
		for _, c := range counts {
			w.raw(`<li><a class="badge"`)
			w.attr("href", "/browse?category="+url.QueryEscape(c.Category))
			w.raw(`>`)
			w.text(models.CategoryLabel(c.Category))
			w.raw(` (`)
			w.text(itoa(c.Count))
			w.raw(`)</a></li>`)
		}
		w.raw(`</ul>`)
	})
}

// categorySelect renders a select over the recognised categories.
func categorySelect(w *writer, name, selected string, includeAll bool) {
	w.raw(`<select`)
	w.attr("id", name)
	w.attr("name", name)
	w.raw(`>`)
	if includeAll {
		w.raw(`<option value="">`)
		w.t("browse_all_categories")
		w.raw(`</option>`)
	}
	for _, c := range models.Categories {
		w.raw(`<option`)
		w.attr("value", c.Value)
		if c.Value == selected {
			w.raw(` selected`)
		}
		w.raw(`>`)
		w.text(c.Label)
		w.raw(`</option>`)
	}
	w.raw(`</select>`)
}
