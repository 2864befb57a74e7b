package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/store"
	"github.com/loamworks/realmctl/pkg/slogx"
)

func newTenantCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage stored tenant and realm credentials",
	}

	cmd.AddCommand(newTenantProvisionCmd(a))
	cmd.AddCommand(newTenantListCmd(a))
	cmd.AddCommand(newTenantDeleteCmd(a))
	cmd.AddCommand(newTenantSetDefaultCmd(a))
	return cmd
}

func newTenantProvisionCmd(a *app) *cobra.Command {
	var realm domain.Realm

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Store credentials for a tenant/realm pair",
		Long:  "Stores the application credentials for a tenant/realm pair. Re-running with the same realm id replaces the stored credentials. The first provisioned pair becomes the default selection.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			secret, err := secretOrPrompt(realm.ClientSecret, "Client secret")
			if err != nil {
				return err
			}
			realm.ClientSecret = secret

			tenant := domain.Tenant{ID: realm.TenantID}
			if err := a.store.Tenants().UpsertTenantAndRealm(ctx, tenant, realm); err != nil {
				return err
			}

			// First pair in becomes the default so commands work immediately.
			_, err = a.store.Defaults().GetDefault(ctx)
			if errors.Is(err, store.ErrNotFound) {
				if err := a.store.Defaults().SetDefault(ctx, realm.TenantID, realm.ID); err != nil {
					return err
				}
				slogx.FromContext(ctx).Info("set default selection",
					"tenant_id", realm.TenantID,
					"realm_id", realm.ID,
				)
			} else if err != nil {
				return err
			}

			return printJSON(domain.TenantWithRealms{
				Tenant: tenant,
				Realms: []domain.Realm{redactRealm(realm)},
			})
		},
	}

	cmd.Flags().StringVar(&realm.TenantID, "tenant-id", "", "Tenant id")
	cmd.Flags().StringVar(&realm.ID, "realm-id", "", "Realm id")
	cmd.Flags().StringVar(&realm.ApplicationID, "application-id", "", "Management API application id")
	cmd.Flags().StringVar(&realm.ClientID, "client-id", "", "OAuth client id")
	cmd.Flags().StringVar(&realm.ClientSecret, "client-secret", "", "OAuth client secret (prompted when omitted)")
	cmd.Flags().StringVar(&realm.OpenIDConfigurationURL, "oidc-configuration-url", "", "OpenID configuration URL for the realm")
	cmd.Flags().StringVar(&realm.AuthBaseURL, "auth-base-url", "", "Base URL for token requests")
	cmd.Flags().StringVar(&realm.APIBaseURL, "api-base-url", "", "Base URL for management API requests")
	_ = cmd.MarkFlagRequired("tenant-id")
	_ = cmd.MarkFlagRequired("realm-id")
	_ = cmd.MarkFlagRequired("application-id")
	_ = cmd.MarkFlagRequired("client-id")
	_ = cmd.MarkFlagRequired("auth-base-url")
	_ = cmd.MarkFlagRequired("api-base-url")

	return cmd
}

func newTenantListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored tenants and realms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenants, err := a.store.Tenants().ListTenantsWithRealms(cmd.Context())
			if err != nil {
				return err
			}
			for i := range tenants {
				for j := range tenants[i].Realms {
					tenants[i].Realms[j] = redactRealm(tenants[i].Realms[j])
				}
			}
			return printJSON(tenants)
		},
	}
}

func newTenantDeleteCmd(a *app) *cobra.Command {
	var tenantID, realmID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored tenant/realm pair",
		Long:  "Deletes the stored realm credentials. The tenant record is removed when its last realm goes, and the default selection is cleared when it referenced the pair.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.store.Tenants().DeleteTenantRealmPair(ctx, tenantID, realmID); err != nil {
				return err
			}
			slogx.FromContext(ctx).Info("deleted tenant/realm pair",
				"tenant_id", tenantID,
				"realm_id", realmID,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "Tenant id")
	cmd.Flags().StringVar(&realmID, "realm-id", "", "Realm id")
	_ = cmd.MarkFlagRequired("tenant-id")
	_ = cmd.MarkFlagRequired("realm-id")

	return cmd
}

func newTenantSetDefaultCmd(a *app) *cobra.Command {
	var tenantID, realmID string

	cmd := &cobra.Command{
		Use:   "set-default",
		Short: "Set the default tenant/realm selection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Refuse to point the default at a pair that was never provisioned.
			if _, err := a.store.Tenants().GetRealm(ctx, tenantID, realmID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("tenant %q realm %q is not provisioned", tenantID, realmID)
				}
				return err
			}

			return a.store.Defaults().SetDefault(ctx, tenantID, realmID)
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "Tenant id")
	cmd.Flags().StringVar(&realmID, "realm-id", "", "Realm id")
	_ = cmd.MarkFlagRequired("tenant-id")
	_ = cmd.MarkFlagRequired("realm-id")

	return cmd
}

// redactRealm blanks the client secret for display.
func redactRealm(r domain.Realm) domain.Realm {
	if r.ClientSecret != "" {
		r.ClientSecret = "<redacted>"
	}
	return r
}
