package session

import (
	"net/http"
	"net/url"
	"time"
)

const markerValue = "authenticated"

// Mirror receives the presence cookie the route guard inspects. It never
// sees a token.
type Mirror interface {
	SetCookie(cookie *http.Cookie)
}

type nopMirror struct{}

func (nopMirror) SetCookie(*http.Cookie) {}

// JarMirror writes the marker into a cookie jar for the dashboard origin,
// so HTTP clients sharing the jar carry it like a browser would.
type JarMirror struct {
	Jar http.CookieJar
	URL *url.URL
}

func (m JarMirror) SetCookie(cookie *http.Cookie) {
	if m.Jar == nil || m.URL == nil {
		return
	}
	m.Jar.SetCookies(m.URL, []*http.Cookie{cookie})
}

func markerCookie(now time.Time, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:    CookieName,
		Value:   markerValue,
		Path:    "/",
		Expires: now.Add(ttl),
	}
}

func expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:    CookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	}
}
