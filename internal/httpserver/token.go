package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "solver_session"

// tokenIssuer signs and verifies HS256 session tokens. The token subject is
// the session ID; holding the token is what grants access to that session.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// sign creates a token for sid and returns it with its expiry.
func (t *tokenIssuer) sign(sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// parse verifies tok and returns the session ID it grants.
func (t *tokenIssuer) parse(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// setCookie writes the session token cookie with appropriate security attributes.
func (t *tokenIssuer) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if t.secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerCookieOrQuery extracts a token from the Authorization header, the
// session cookie, or the "token" query parameter (browsers cannot set headers
// on WebSocket handshakes).
func bearerCookieOrQuery(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}
