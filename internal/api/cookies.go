package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/abyxtask/taskctl/internal/infrastructure/storage"
)

// cookieKey is the fixed storage key the session cookies persist under,
// independent of the request's target host.
const cookieKey = "cookies"

// CookieJar is an http.CookieJar that persists the backend's session cookies
// across process restarts. The whole set is serialized as one ";"-joined
// string; each response's cookies overwrite the stored value (last response
// wins, no merge by name).
type CookieJar struct {
	store *storage.Store
}

// NewCookieJar creates a jar persisting into store.
func NewCookieJar(store *storage.Store) *CookieJar {
	return &CookieJar{store: store}
}

// SetCookies serializes cookies to their canonical string form and overwrites
// the persisted value. The URL is ignored: the jar serves a single backend.
func (j *CookieJar) SetCookies(_ *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}

	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.String())
	}
	j.store.Put(cookieKey, strings.Join(parts, ";"))
}

// Cookies parses the persisted string back into cookies, silently dropping
// any fragment that fails to parse. An empty store yields no cookies.
func (j *CookieJar) Cookies(_ *url.URL) []*http.Cookie {
	stored := j.store.Get(cookieKey)
	if stored == "" {
		return nil
	}

	var cookies []*http.Cookie
	for _, fragment := range strings.Split(stored, ";") {
		c, err := http.ParseSetCookie(strings.TrimSpace(fragment))
		if err != nil {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies
}

// Clear drops the persisted session. Called on logout.
func (j *CookieJar) Clear() error {
	return j.store.Delete(cookieKey)
}
