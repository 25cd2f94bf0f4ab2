// Package auth pulls caller credentials off incoming requests.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const (
	AccessTokenCookie = "access_token"
	ServiceAuthHeader = "X-Service-Auth"
)

// ExtractAccessToken returns the session JWT, preferring the cookie over an
// Authorization: Bearer header. An empty string means anonymous.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// IsServiceCall reports whether the request presents the shared
// service-to-service key. An empty key never matches.
func IsServiceCall(r *http.Request, key string) bool {
	if key == "" {
		return false
	}
	got := r.Header.Get(ServiceAuthHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1
}
