// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package htmx reads htmx request headers and sets the response headers
// used by the like button and the login redirect.
package htmx

import (
	"net/http"
)

const (
	HeaderRequest = "HX-Request"
	HeaderBoosted = "HX-Boosted"
	HeaderTarget  = "HX-Target"
	HeaderTrigger = "HX-Trigger"

	HeaderRedirect = "HX-Redirect"
)

// Request holds the htmx headers of an incoming request.
type Request struct { //nolint:govet // fieldalignment not critical
	IsHtmx    bool
	IsBoosted bool

	// Target is the id of the element the response is swapped into,
	// e.g. "likes-42" for a like counter.
	Target  string
	Trigger string
}

// ParseRequest extracts htmx information from request headers.
func ParseRequest(r *http.Request) *Request {
	return &Request{
		IsHtmx:    IsRequest(r),
		IsBoosted: r.Header.Get(HeaderBoosted) == "true",
		Target:    r.Header.Get(HeaderTarget),
		Trigger:   r.Header.Get(HeaderTrigger),
	}
}

// IsRequest reports whether r was issued by htmx.
func IsRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// Redirect instructs htmx to navigate the whole page to url.
// Plain HTTP redirects would be followed by the XHR and swapped into the target.
func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderRedirect, url)
}
