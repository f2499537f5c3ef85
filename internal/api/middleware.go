package api

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// localOrigin rejects browser requests coming from any page other than the
// panel itself, a loopback host or a browser extension.
func localOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowedOrigin(c.GetHeader("Origin"), c.Request.Host) {
			respondError(c, http.StatusForbidden, ErrorForbidden, "origin not allowed")
			return
		}
		c.Next()
	}
}

// requireJSON makes every POST a non-simple request, so browsers must pass a
// CORS preflight this server never grants.
func requireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost && c.ContentType() != gin.MIMEJSON {
			respondError(c, http.StatusUnsupportedMediaType, ErrorUnsupportedMedia, "content type must be application/json")
			return
		}
		c.Next()
	}
}

// allowedOrigin accepts requests without an Origin header (CLI tools), the
// server's own host, loopback hosts and extension pages.
func allowedOrigin(origin, host string) bool {
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "chrome-extension", "moz-extension":
		return true
	case "http", "https":
	default:
		return false
	}

	if strings.EqualFold(u.Host, host) {
		return true
	}
	hostname := strings.ToLower(u.Hostname())
	if hostname == "localhost" {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}
