package middleware

import (
	"net/http"
	"strings"
)

// IsAPIRequest reports whether r should get a machine-readable response
// rather than a redirect. Any one of these is enough: a JSON Content-Type,
// an Accept header that takes JSON, or a path under /api.
func IsAPIRequest(r *http.Request) bool {
	return mentionsJSON(r.Header.Get("Content-Type")) ||
		mentionsJSON(r.Header.Get("Accept")) ||
		strings.HasPrefix(r.URL.Path, "/api")
}

// mentionsJSON matches application/json as well as structured suffixes
// such as application/vnd.api+json.
func mentionsJSON(v string) bool {
	return strings.Contains(v, "/json") || strings.Contains(v, "+json")
}
