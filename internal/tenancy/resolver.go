// Package tenancy maps an inbound Host header to the tenant it addresses.
package tenancy

import (
	"net"
	"strings"
)

// DefaultReservedAliases are leftmost labels that address the primary site.
var DefaultReservedAliases = []string{"www"}

// Resolver maps hosts of the form {tenant}.{domain}.{tld} to a tenant key.
// The zero value treats only "www" as reserved.
type Resolver struct {
	reserved    map[string]struct{}
	development bool
}

// NewResolver builds a resolver. In development every host resolves to no
// tenant, so localhost and LAN addresses pass through untouched.
func NewResolver(reservedAliases []string, development bool) *Resolver {
	if len(reservedAliases) == 0 {
		reservedAliases = DefaultReservedAliases
	}
	reserved := make(map[string]struct{}, len(reservedAliases))
	for _, alias := range reservedAliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias != "" {
			reserved[alias] = struct{}{}
		}
	}
	return &Resolver{reserved: reserved, development: development}
}

// Resolve returns the tenant key for host and true, or "" and false when the
// host addresses the primary site.
func (r *Resolver) Resolve(host string) (string, bool) {
	if r == nil {
		r = NewResolver(nil, false)
	}
	if r.development {
		return "", false
	}

	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return "", false
	}

	key := labels[0]
	if key == "" {
		return "", false
	}
	if _, ok := r.reserved[key]; ok {
		return "", false
	}
	return key, true
}

// RewritePath prefixes path with the tenant key so the tenant becomes the
// first path segment: ("5004", "/players") -> "/5004/players".
func RewritePath(tenantKey, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + tenantKey + path
}
