package apiclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/store"

	"golang.org/x/sync/singleflight"
)

// Scope is the tenant/realm pair a Client acts on. It is resolved once per
// invocation (from flags or the stored default) and threaded explicitly, so
// operations stay testable without shared database state.
type Scope struct {
	Tenant domain.Tenant
	Realm  domain.Realm
}

// Client issues authenticated calls against one tenant/realm scope.
type Client struct {
	HTTPClient *http.Client

	// PageSize is the page_size query parameter sent on paginated requests.
	PageSize int

	// Tokens is the persistent token cache shared across invocations.
	Tokens store.Tokens

	// Scope binds the client to a tenant/realm pair.
	Scope Scope

	group singleflight.Group
}

// New returns a Client for the given scope backed by the persistent token
// cache.
func New(tokens store.Tokens, scope Scope) *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		PageSize: 200,
		Tokens:   tokens,
		Scope:    scope,
	}
}

// ResolveScope turns optional explicit tenant/realm ids into a concrete
// Scope, falling back to the stored default selection. Both ids must be
// given together; with neither given and no default set it returns ErrNoScope.
func ResolveScope(ctx context.Context, st store.Store, tenantID, realmID string) (Scope, error) {
	if tenantID == "" || realmID == "" {
		sel, err := st.Defaults().GetDefault(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return Scope{}, ErrNoScope
		}
		if err != nil {
			return Scope{}, err
		}
		tenantID, realmID = sel.TenantID, sel.RealmID
	}

	tenant, err := st.Tenants().GetTenant(ctx, tenantID)
	if err != nil {
		return Scope{}, err
	}
	realm, err := st.Tenants().GetRealm(ctx, tenantID, realmID)
	if err != nil {
		return Scope{}, err
	}

	return Scope{Tenant: tenant, Realm: realm}, nil
}
