package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/store"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "realmctl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testRealm(tenantID, realmID, secret string) domain.Realm {
	return domain.Realm{
		ID:                     realmID,
		TenantID:               tenantID,
		ApplicationID:          "app-" + realmID,
		ClientID:               "client-" + realmID,
		ClientSecret:           secret,
		OpenIDConfigurationURL: "https://auth.example.com/.well-known/openid-configuration",
		AuthBaseURL:            "https://auth.example.com",
		APIBaseURL:             "https://api.example.com",
	}
}

func TestUpsertTenantAndRealm(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	tenant := domain.Tenant{ID: "t1"}

	require.NoError(t, s.Tenants().UpsertTenantAndRealm(ctx, tenant, testRealm("t1", "r1", "secret-one")))

	// Same realm id, different secret: replace, never duplicate.
	require.NoError(t, s.Tenants().UpsertTenantAndRealm(ctx, tenant, testRealm("t1", "r1", "secret-two")))

	all, err := s.Tenants().ListTenantsWithRealms(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Realms, 1)
	require.Equal(t, "secret-two", all[0].Realms[0].ClientSecret)

	realm, err := s.Tenants().GetRealm(ctx, "t1", "r1")
	require.NoError(t, err)
	require.Equal(t, "secret-two", realm.ClientSecret)
}

func TestDeleteTenantRealmPair(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	tenant := domain.Tenant{ID: "t1"}
	require.NoError(t, s.Tenants().UpsertTenantAndRealm(ctx, tenant, testRealm("t1", "r1", "s1")))
	require.NoError(t, s.Tenants().UpsertTenantAndRealm(ctx, tenant, testRealm("t1", "r2", "s2")))

	t.Run("tenant survives while realms remain", func(t *testing.T) {
		require.NoError(t, s.Tenants().DeleteTenantRealmPair(ctx, "t1", "r1"))

		_, err := s.Tenants().GetTenant(ctx, "t1")
		require.NoError(t, err)

		_, err = s.Tenants().GetRealm(ctx, "t1", "r1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("last realm removes tenant and clears default", func(t *testing.T) {
		require.NoError(t, s.Defaults().SetDefault(ctx, "t1", "r2"))

		require.NoError(t, s.Tenants().DeleteTenantRealmPair(ctx, "t1", "r2"))

		_, err := s.Tenants().GetTenant(ctx, "t1")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Defaults().GetDefault(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDefaultSelection(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	// Unset default is a normal outcome, not corruption.
	_, err := s.Defaults().GetDefault(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Defaults().SetDefault(ctx, "t1", "r1"))
	require.NoError(t, s.Defaults().SetDefault(ctx, "t2", "r9"))

	sel, err := s.Defaults().GetDefault(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultSelection{TenantID: "t2", RealmID: "r9"}, sel)
}

func TestTokens(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Tokens().GetToken(ctx, "t1", "r1")
	require.ErrorIs(t, err, store.ErrNotFound)

	first := domain.Token{
		AccessToken:   "tok-one",
		ExpiresAt:     1700000000,
		TenantID:      "t1",
		RealmID:       "r1",
		ApplicationID: "app1",
	}
	require.NoError(t, s.Tokens().SetToken(ctx, first))

	// Replace-on-write for the same scope.
	second := first
	second.AccessToken = "tok-two"
	second.ExpiresAt = 1800000000
	require.NoError(t, s.Tokens().SetToken(ctx, second))

	got, err := s.Tokens().GetToken(ctx, "t1", "r1")
	require.NoError(t, err)
	require.Equal(t, second, got)

	// A different scope never sees t1/r1's token.
	_, err = s.Tokens().GetToken(ctx, "t1", "r2")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Tokens().DeleteToken(ctx, "t1", "r1"))
	_, err = s.Tokens().GetToken(ctx, "t1", "r1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSettingsConfig(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetConfig[domain.OktaConfig](ctx, s.Settings(), store.KeyOktaConfig)
	require.ErrorIs(t, err, store.ErrNotFound)

	cfg := domain.OktaConfig{Domain: "https://example.okta.com", APIKey: "sswskey"}
	require.NoError(t, store.SetConfig(ctx, s.Settings(), store.KeyOktaConfig, cfg))

	got, err := store.GetConfig[domain.OktaConfig](ctx, s.Settings(), store.KeyOktaConfig)
	require.NoError(t, err)
	require.Equal(t, cfg, got)

	// Last write wins.
	cfg.APIKey = "rotated"
	require.NoError(t, store.SetConfig(ctx, s.Settings(), store.KeyOktaConfig, cfg))
	got, err = store.GetConfig[domain.OktaConfig](ctx, s.Settings(), store.KeyOktaConfig)
	require.NoError(t, err)
	require.Equal(t, "rotated", got.APIKey)

	t.Run("malformed blob surfaces as error", func(t *testing.T) {
		require.NoError(t, s.Settings().SetValue(ctx, "broken", []byte("{not json")))
		_, err := store.GetConfig[domain.OktaConfig](ctx, s.Settings(), "broken")
		require.Error(t, err)
		require.NotErrorIs(t, err, store.ErrNotFound)
	})
}
