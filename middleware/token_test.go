// ABOUTME: Tests for the token cookie store
// ABOUTME: Checks the cookie attributes that keep the token away from page scripts

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenStore_SetAttributes(t *testing.T) {
	w := httptest.NewRecorder()
	TokenStore{Secure: true}.Set(w, "t1")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != TokenCookieName || c.Value != "t1" {
		t.Errorf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if !c.Secure {
		t.Error("cookie must be Secure when configured")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite=Lax, got %v", c.SameSite)
	}
	if c.MaxAge != 7*24*3600 {
		t.Errorf("expected 7 day MaxAge, got %d", c.MaxAge)
	}
	if c.Path != "/" {
		t.Errorf("expected Path=/, got %q", c.Path)
	}
}

func TestTokenStore_GetRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	store := TokenStore{}
	store.Set(w, "t1")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	if got := store.Get(r); got != "t1" {
		t.Errorf("expected t1, got %q", got)
	}
}

func TestTokenStore_GetMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := (TokenStore{}).Get(r); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}

func TestTokenStore_Clear(t *testing.T) {
	w := httptest.NewRecorder()
	TokenStore{}.Clear(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected negative MaxAge, got %d", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("expected empty value, got %q", cookies[0].Value)
	}
}
