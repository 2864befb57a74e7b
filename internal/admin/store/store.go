package store

import (
	"context"
	"errors"

	"github.com/loamworks/realmctl/internal/admin/domain"
)

// ErrNotFound is returned when a record does not exist. Absence of a default
// selection or a cached token is a normal outcome, so callers are expected to
// check for this rather than treat it as fatal.
var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, mirroring the shape of the schema.
type Store interface {
	Tenants() Tenants
	Defaults() Defaults
	Tokens() Tokens
	Settings() Settings

	// ApplyMigrations brings the schema up to date. Called once at startup;
	// a failure here is fatal to the process.
	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store scoped to a single transaction.
type Tx interface {
	Tenants() Tenants
	Defaults() Defaults
	Tokens() Tokens
	Settings() Settings
}

type Tenants interface {
	// UpsertTenantAndRealm inserts the tenant if new (no-op when it exists)
	// and inserts-or-replaces the realm by id. Idempotent.
	UpsertTenantAndRealm(ctx context.Context, tenant domain.Tenant, realm domain.Realm) error

	// GetTenant returns a tenant by id.
	GetTenant(ctx context.Context, id string) (domain.Tenant, error)

	// GetRealm returns a realm by tenant and realm id.
	GetRealm(ctx context.Context, tenantID, realmID string) (domain.Realm, error)

	// ListTenantsWithRealms returns every stored tenant with its realms.
	ListTenantsWithRealms(ctx context.Context) ([]domain.TenantWithRealms, error)

	// DeleteTenantRealmPair deletes the realm, deletes the tenant when no
	// realms remain for it, and clears the default selection when it
	// referenced the pair. All three effects happen in one transaction.
	DeleteTenantRealmPair(ctx context.Context, tenantID, realmID string) error
}

type Defaults interface {
	// GetDefault returns the default tenant/realm selection, or ErrNotFound
	// when none is set.
	GetDefault(ctx context.Context) (domain.DefaultSelection, error)

	// SetDefault replaces any prior default selection (singleton semantics).
	SetDefault(ctx context.Context, tenantID, realmID string) error
}

type Tokens interface {
	// GetToken returns the cached token for a tenant/realm scope, or
	// ErrNotFound when none is cached.
	GetToken(ctx context.Context, tenantID, realmID string) (domain.Token, error)

	// SetToken replaces the cached token for the token's scope.
	SetToken(ctx context.Context, token domain.Token) error

	// DeleteToken removes the cached token for a scope (e.g. on logout).
	DeleteToken(ctx context.Context, tenantID, realmID string) error
}

type Settings interface {
	// GetValue returns the raw JSON blob stored under key, or ErrNotFound.
	GetValue(ctx context.Context, key string) ([]byte, error)

	// SetValue stores a raw JSON blob under key, replacing any prior value.
	SetValue(ctx context.Context, key string, value []byte) error
}
