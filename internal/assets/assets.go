// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package assets provides embedded static assets with content-hashed filenames.
package assets

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFS embed.FS

// Prefix is the URL prefix all assets are served under.
const Prefix = "/static/"

const hashLength = 8

// Manifest maps embedded asset names to their content-hashed URLs.
type Manifest struct {
	files  fs.FS
	hashed map[string]string // "css/styles.css" -> "/static/css/styles.1a2b3c4d.css"
	plain  map[string]string // "css/styles.1a2b3c4d.css" -> "css/styles.css"
}

// Load builds the manifest from the embedded static directory.
func Load() (*Manifest, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded assets: %w", err)
	}
	return New(sub)
}

// New builds a manifest over an arbitrary file system.
func New(files fs.FS) (*Manifest, error) {
	m := &Manifest{
		files:  files,
		hashed: make(map[string]string),
		plain:  make(map[string]string),
	}

	err := fs.WalkDir(files, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(files, name)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		hashedName := withHash(name, hex.EncodeToString(sum[:])[:hashLength])
		m.hashed[name] = Prefix + hashedName
		m.plain[hashedName] = name
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to hash assets: %w", err)
	}

	slog.Debug("assets loaded", "count", len(m.hashed))
	return m, nil
}

// Path returns the hashed URL for an asset name like "css/styles.css".
// Unknown names fall back to the unhashed URL.
func (m *Manifest) Path(name string) string {
	if p, ok := m.hashed[name]; ok {
		return p
	}
	return Prefix + name
}

// Handler serves assets under Prefix, resolving hashed names to the embedded files.
func (m *Manifest) Handler() http.Handler {
	fileServer := http.FileServer(http.FS(m.files))
	return http.StripPrefix(strings.TrimSuffix(Prefix, "/"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if original, ok := m.plain[name]; ok {
			r2 := r.Clone(r.Context())
			r2.URL.Path = "/" + original
			fileServer.ServeHTTP(w, r2)
			return
		}
		fileServer.ServeHTTP(w, r)
	}))
}

// withHash inserts hash before the file extension: app.js -> app.<hash>.js.
func withHash(name, hash string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "." + hash + ext
}
