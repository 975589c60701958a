package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCookie covers every way an inbound cookie value can fail:
// bad signature, malformed input, wrong algorithm, or a stale timestamp.
// Callers are given no way to tell tamper from expiry.
var ErrInvalidCookie = errors.New("invalid session cookie")

type cookieClaims struct {
	SessionToken string `json:"tok"`
	jwt.RegisteredClaims
}

// CookieSigner turns server-side session tokens into tamper-evident,
// time-limited cookie values (HS256 over the token plus an issued-at
// timestamp). The secret is process-wide and immutable; rotating it
// invalidates every outstanding cookie.
type CookieSigner struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewCookieSigner(secret string, maxAge time.Duration) *CookieSigner {
	return &CookieSigner{
		secret: []byte(secret),
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (s *CookieSigner) Sign(sessionToken string) (string, error) {
	claims := cookieClaims{
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Unsign recovers the session token from a cookie value. The embedded
// issued-at must be within maxAge of now.
func (s *CookieSigner) Unsign(value string) (string, error) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCookie
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", ErrInvalidCookie
	}

	if claims.SessionToken == "" || claims.IssuedAt == nil {
		return "", ErrInvalidCookie
	}
	if s.now().Sub(claims.IssuedAt.Time) > s.maxAge {
		return "", ErrInvalidCookie
	}

	return claims.SessionToken, nil
}
