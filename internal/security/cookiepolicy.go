package security

import (
	"net/http"
	"time"
)

// CookiePolicy builds the cookies that establish and clear sessions.
// Set and clear use identical name, path, and flags so a clear always
// removes what a set created.
type CookiePolicy struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

func NewCookiePolicy(name string, maxAge time.Duration, secure bool) CookiePolicy {
	return CookiePolicy{Name: name, MaxAge: maxAge, Secure: secure}
}

// sameSite is Strict only when the cookie is Secure. The relaxed Lax mode
// exists for non-TLS local development, where Strict would break the
// login redirect flow of browser frontends.
func (p CookiePolicy) sameSite() http.SameSite {
	if p.Secure {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

func (p CookiePolicy) SessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(p.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.sameSite(),
	}
}

func (p CookiePolicy) ClearingCookie() *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.sameSite(),
	}
}
