package apiclient

import (
	"fmt"
	"net/url"
)

// URLBuilder composes endpoint URLs from a realm's stored base URLs plus
// structured path steps, so routing conventions live in one place instead of
// scattered string concatenation. Step order is significant and mirrors the
// platform's routing: {base}/v1/tenants/{tenant_id}/realms/{realm_id}/...
type URLBuilder struct {
	scope    Scope
	base     string
	segments []string
	query    url.Values
}

// URL starts a builder seeded with the client's scope. Select a base with
// API or Auth before Build.
func (c *Client) URL() *URLBuilder {
	return &URLBuilder{scope: c.Scope, query: url.Values{}}
}

// API selects the realm's api_base_url as the base.
func (b *URLBuilder) API() *URLBuilder {
	b.base = b.scope.Realm.APIBaseURL
	return b
}

// Auth selects the realm's auth_base_url as the base.
func (b *URLBuilder) Auth() *URLBuilder {
	b.base = b.scope.Realm.AuthBaseURL
	return b
}

// Tenant appends the tenants/{tenant_id} segment for the bound tenant.
func (b *URLBuilder) Tenant() *URLBuilder {
	b.segments = append(b.segments, "tenants", b.scope.Tenant.ID)
	return b
}

// Realm appends the realms/{realm_id} segment for the bound realm.
func (b *URLBuilder) Realm() *URLBuilder {
	return b.RealmID(b.scope.Realm.ID)
}

// RealmID appends realms/{id} with an explicit realm id override.
func (b *URLBuilder) RealmID(id string) *URLBuilder {
	b.segments = append(b.segments, "realms", id)
	return b
}

// Path appends arbitrary trailing path segments in order.
func (b *URLBuilder) Path(segments ...string) *URLBuilder {
	b.segments = append(b.segments, segments...)
	return b
}

// Query adds a query parameter to the rendered URL.
func (b *URLBuilder) Query(key, value string) *URLBuilder {
	b.query.Set(key, value)
	return b
}

// Build renders the accumulated steps into a single validated URL string.
func (b *URLBuilder) Build() (string, error) {
	u, err := url.Parse(b.base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute base URL", ErrInvalidURL, b.base)
	}

	u = u.JoinPath(append([]string{"v1"}, b.segments...)...)
	if len(b.query) > 0 {
		u.RawQuery = b.query.Encode()
	}
	return u.String(), nil
}
