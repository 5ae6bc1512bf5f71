package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	resolver := NewResolver(nil, false)

	tests := []struct {
		name       string
		host       string
		wantKey    string
		wantTenant bool
	}{
		{name: "tenant subdomain", host: "5004.example.com", wantKey: "5004", wantTenant: true},
		{name: "tenant subdomain with port", host: "5004.example.com:8443", wantKey: "5004", wantTenant: true},
		{name: "mixed case host", host: "ABC.Example.COM", wantKey: "abc", wantTenant: true},
		{name: "deep subdomain uses leftmost label", host: "5004.stats.example.com", wantKey: "5004", wantTenant: true},
		{name: "reserved alias", host: "www.example.com", wantTenant: false},
		{name: "reserved alias upper case", host: "WWW.example.com", wantTenant: false},
		{name: "apex domain", host: "example.com", wantTenant: false},
		{name: "apex with port", host: "example.com:443", wantTenant: false},
		{name: "localhost", host: "localhost:3000", wantTenant: false},
		{name: "empty host", host: "", wantTenant: false},
		{name: "empty leftmost label", host: ".example.com", wantTenant: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := resolver.Resolve(tt.host)
			assert.Equal(t, tt.wantTenant, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestResolve_DevelopmentPassesThrough(t *testing.T) {
	resolver := NewResolver(nil, true)

	for _, host := range []string{"5004.example.com", "www.example.com", "example.com"} {
		key, ok := resolver.Resolve(host)
		assert.False(t, ok, host)
		assert.Empty(t, key, host)
	}
}

func TestResolve_CustomReservedAliases(t *testing.T) {
	resolver := NewResolver([]string{"www", " Admin ", ""}, false)

	_, ok := resolver.Resolve("admin.example.com")
	assert.False(t, ok)

	key, ok := resolver.Resolve("5004.example.com")
	assert.True(t, ok)
	assert.Equal(t, "5004", key)
}

func TestResolve_NilResolverUsesDefaults(t *testing.T) {
	var resolver *Resolver

	key, ok := resolver.Resolve("5004.example.com")
	assert.True(t, ok)
	assert.Equal(t, "5004", key)

	_, ok = resolver.Resolve("www.example.com")
	assert.False(t, ok)
}

func TestRewritePath(t *testing.T) {
	assert.Equal(t, "/5004/students", RewritePath("5004", "/students"))
	assert.Equal(t, "/5004/players", RewritePath("5004", "/players"))
	assert.Equal(t, "/5004/", RewritePath("5004", "/"))
	assert.Equal(t, "/5004/", RewritePath("5004", ""))
}
