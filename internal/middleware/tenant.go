package middleware

import (
	"strings"

	"yatstats/internal/common"
	"yatstats/internal/tenancy"

	"github.com/labstack/echo/v4"
)

// DefaultBypassPrefixes are infrastructure paths that are never rewritten.
var DefaultBypassPrefixes = []string{
	"/api",
	"/_next/static",
	"/_next/image",
	"/favicon.ico",
	"/health",
	"/metrics",
	"/assets",
}

// TenantMiddleware maps tenant subdomains onto the first path segment
type TenantMiddleware struct {
	resolver       *tenancy.Resolver
	bypassPrefixes []string
}

// NewTenantMiddleware creates a tenant middleware. A nil bypass list uses
// DefaultBypassPrefixes.
func NewTenantMiddleware(resolver *tenancy.Resolver, bypassPrefixes []string) *TenantMiddleware {
	if bypassPrefixes == nil {
		bypassPrefixes = DefaultBypassPrefixes
	}
	return &TenantMiddleware{
		resolver:       resolver,
		bypassPrefixes: bypassPrefixes,
	}
}

// Rewrite must be registered with e.Pre so routing sees the rewritten path.
// Only the path changes; scheme and host are left as received.
func (tm *TenantMiddleware) Rewrite() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if tm.isInfrastructurePath(req.URL.Path) {
				return next(c)
			}

			key, ok := tm.resolver.Resolve(req.Host)
			if !ok {
				return next(c)
			}

			req.URL.Path = tenancy.RewritePath(key, req.URL.Path)
			if req.URL.RawPath != "" {
				req.URL.RawPath = tenancy.RewritePath(key, req.URL.RawPath)
			}
			c.SetRequest(req.WithContext(common.WithTenantKey(req.Context(), key)))

			return next(c)
		}
	}
}

func (tm *TenantMiddleware) isInfrastructurePath(path string) bool {
	for _, prefix := range tm.bypassPrefixes {
		if path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}
	return false
}
