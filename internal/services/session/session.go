// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session stores the logged-in user and flash messages in signed cookies.
package session

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/jokebox/internal/config"
	"github.com/gorilla/securecookie"
)

const keyLength = 32

// flashMaxAge bounds how long an unread flash survives.
const flashMaxAge = 300

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Data is the payload of a session cookie.
type Data struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// Manager issues and verifies session and flash cookies.
type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a Manager from the session config. Without a hash key
// an ephemeral key is generated and sessions do not survive a restart.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := decodeKey(cfg.HashKey, "hash")
	if err != nil {
		return nil, err
	}
	if hashKey == nil {
		slog.Warn("session_hash_key_missing", "hint", "set session.hash_key to keep sessions across restarts")
		hashKey = securecookie.GenerateRandomKey(keyLength)
	}

	blockKey, err := decodeKey(cfg.BlockKey, "block")
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(cfg.MaxAge)

	return &Manager{
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     secure,
	}, nil
}

func decodeKey(value, name string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid session %s key: %w", name, err)
	}
	if len(key) != keyLength {
		return nil, fmt.Errorf("invalid session %s key: must be 32 bytes, got %d", name, len(key))
	}
	return key, nil
}

// Create returns a session cookie for the given user.
func (m *Manager) Create(userID int64, username string) (*http.Cookie, error) {
	data := Data{
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(time.Duration(m.maxAge) * time.Second),
	}

	encoded, err := m.codec.Encode(m.cookieName, data)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	return m.cookie(m.cookieName, encoded, m.maxAge), nil
}

// Parse returns the session data of r, or nil if there is no valid session.
// Invalid, tampered and expired cookies are treated as absent.
func (m *Manager) Parse(r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, nil //nolint:nilnil // no session is not an error
	}

	var data Data
	if err := m.codec.Decode(m.cookieName, cookie.Value, &data); err != nil {
		return nil, nil //nolint:nilnil // unreadable cookie means no session
	}
	if time.Now().After(data.ExpiresAt) {
		return nil, nil //nolint:nilnil // expired
	}
	return &data, nil
}

// Clear returns a cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return m.cookie(m.cookieName, "", -1)
}

func (m *Manager) flashName() string {
	return m.cookieName + "_flash"
}

// SetFlash stores a flash message for the next request.
func (m *Manager) SetFlash(w http.ResponseWriter, kind, message string) error {
	encoded, err := m.codec.Encode(m.flashName(), Flash{Kind: kind, Message: message})
	if err != nil {
		return fmt.Errorf("encoding flash: %w", err)
	}
	http.SetCookie(w, m.cookie(m.flashName(), encoded, flashMaxAge))
	return nil
}

// PopFlash returns the pending flash message, if any, and removes it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(m.flashName())
	if err != nil {
		return nil
	}
	http.SetCookie(w, m.cookie(m.flashName(), "", -1))

	var flash Flash
	if err := m.codec.Decode(m.flashName(), cookie.Value, &flash); err != nil {
		return nil
	}
	return &flash
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
