// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package assets_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"testing/fstest"

	"codeberg.org/oliverandrich/jokebox/internal/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hashedCSS = regexp.MustCompile(`^/static/css/styles\.[0-9a-f]{8}\.css$`)

func TestLoad_EmbeddedAssets(t *testing.T) {
	m, err := assets.Load()
	require.NoError(t, err)

	assert.Regexp(t, hashedCSS, m.Path("css/styles.css"))
	assert.Regexp(t, `^/static/js/app\.[0-9a-f]{8}\.js$`, m.Path("js/app.js"))
}

func TestPath_UnknownFallsBack(t *testing.T) {
	m, err := assets.New(fstest.MapFS{})
	require.NoError(t, err)

	assert.Equal(t, "/static/img/logo.png", m.Path("img/logo.png"))
}

func TestPath_ChangesWithContent(t *testing.T) {
	a, err := assets.New(fstest.MapFS{"css/styles.css": {Data: []byte("body{}")}})
	require.NoError(t, err)
	b, err := assets.New(fstest.MapFS{"css/styles.css": {Data: []byte("body{color:red}")}})
	require.NoError(t, err)

	assert.NotEqual(t, a.Path("css/styles.css"), b.Path("css/styles.css"))
}

func TestHandler_ServesHashedAndPlainNames(t *testing.T) {
	m, err := assets.New(fstest.MapFS{"js/app.js": {Data: []byte("console.log(1)")}})
	require.NoError(t, err)
	handler := m.Handler()

	for _, target := range []string{m.Path("js/app.js"), "/static/js/app.js"} {
		t.Run(target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			body, _ := io.ReadAll(rec.Body)
			assert.Equal(t, "console.log(1)", string(body))
		})
	}
}

func TestHandler_Missing(t *testing.T) {
	m, err := assets.New(fstest.MapFS{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/nope.css", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
