package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets the hardening headers. Paths under any of
// relaxedPrefixes skip the Content-Security-Policy so the Swagger UI can run
// its inline bootstrap script.
func SecurityHeadersMiddleware(relaxedPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()

		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("X-XSS-Protection", "1; mode=block")
		headers.Set("Referrer-Policy", "no-referrer")

		if !hasAnyPrefix(c.Request.URL.Path, relaxedPrefixes) {
			headers.Set("Content-Security-Policy", "default-src 'self'")
		}

		c.Next()
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
