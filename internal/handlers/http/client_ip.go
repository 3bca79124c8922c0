package http

import (
	"net/http"
	"strings"
)

const unknownClient = "unknown"

// ClientID identifies the caller for rate limiting: the first X-Forwarded-For
// entry, then X-Real-IP, else a shared "unknown" bucket.
func ClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return unknownClient
}
