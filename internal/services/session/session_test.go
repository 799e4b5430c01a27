// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/oliverandrich/jokebox/internal/config"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hashKey  = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	blockKey = "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"
)

func newTestConfig() *config.SessionConfig {
	return &config.SessionConfig{
		CookieName: "_test_session",
		MaxAge:     3600,
		HashKey:    hashKey,
	}
}

func newManager(t *testing.T, secure bool) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(newTestConfig(), secure)
	require.NoError(t, err)
	return mgr
}

func requestWith(cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestNewManager_Keys(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		block    string
		errorMsg string
	}{
		{"hash key only", hashKey, "", ""},
		{"hash and block key", hashKey, blockKey, ""},
		{"empty hash key generates one", "", "", ""},
		{"hash key not hex", "not-hex-encoded", "", "invalid session hash key"},
		{"hash key too short", "0123456789abcdef", "", "must be 32 bytes"},
		{"block key not hex", hashKey, "not-hex-encoded", "invalid session block key"},
		{"block key too short", hashKey, "0123456789abcdef", "must be 32 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.HashKey, cfg.BlockKey = tt.hash, tt.block

			mgr, err := session.NewManager(cfg, false)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, mgr)
		})
	}
}

func TestCreateAndParse(t *testing.T) {
	for _, secure := range []bool{false, true} {
		mgr := newManager(t, secure)

		cookie, err := mgr.Create(42, "alice")
		require.NoError(t, err)

		assert.Equal(t, "_test_session", cookie.Name)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, 3600, cookie.MaxAge)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, secure, cookie.Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

		data, err := mgr.Parse(requestWith(cookie))
		require.NoError(t, err)
		require.NotNil(t, data)
		assert.Equal(t, int64(42), data.UserID)
		assert.Equal(t, "alice", data.Username)
		assert.WithinDuration(t, time.Now().Add(time.Hour), data.ExpiresAt, time.Minute)
	}
}

func TestParse_RejectsBadCookies(t *testing.T) {
	mgr := newManager(t, false)
	valid, err := mgr.Create(42, "alice")
	require.NoError(t, err)

	otherCfg := newTestConfig()
	otherCfg.HashKey = blockKey
	other, err := session.NewManager(otherCfg, false)
	require.NoError(t, err)
	foreign, err := other.Create(42, "alice")
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"garbage", &http.Cookie{Name: "_test_session", Value: "invalid-cookie-value"}},
		{"tampered", &http.Cookie{Name: "_test_session", Value: valid.Value[:len(valid.Value)-5] + "XXXXX"}},
		{"signed with another key", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWith()
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			data, err := mgr.Parse(req)

			require.NoError(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestParse_ExpiredSession(t *testing.T) {
	cfg := newTestConfig()
	cfg.MaxAge = 1
	mgr, err := session.NewManager(cfg, false)
	require.NoError(t, err)

	cookie, err := mgr.Create(42, "alice")
	require.NoError(t, err)

	time.Sleep(2 * time.Second)

	data, err := mgr.Parse(requestWith(cookie))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestClear(t *testing.T) {
	for _, secure := range []bool{false, true} {
		cookie := newManager(t, secure).Clear()

		assert.Equal(t, "_test_session", cookie.Name)
		assert.Empty(t, cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, secure, cookie.Secure)
	}
}

func TestFlash_RoundTrip(t *testing.T) {
	mgr := newManager(t, false)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.SetFlash(rec, session.FlashSuccess, "Joke added!"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "_test_session_flash", cookies[0].Name)

	rec = httptest.NewRecorder()
	flash := mgr.PopFlash(rec, requestWith(cookies[0]))

	require.NotNil(t, flash)
	assert.Equal(t, session.FlashSuccess, flash.Kind)
	assert.Equal(t, "Joke added!", flash.Message)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestPopFlash_None(t *testing.T) {
	mgr := newManager(t, false)

	rec := httptest.NewRecorder()
	assert.Nil(t, mgr.PopFlash(rec, requestWith()))
	assert.Empty(t, rec.Result().Cookies())
}

func TestPopFlash_Tampered(t *testing.T) {
	mgr := newManager(t, false)

	rec := httptest.NewRecorder()
	flash := mgr.PopFlash(rec, requestWith(&http.Cookie{Name: "_test_session_flash", Value: "garbage"}))

	assert.Nil(t, flash)
	require.Len(t, rec.Result().Cookies(), 1, "a bad flash cookie is still cleared")
}
