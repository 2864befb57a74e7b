package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/service"
	"github.com/loamworks/realmctl/internal/admin/store"
	"github.com/loamworks/realmctl/internal/providers/okta"
	"github.com/loamworks/realmctl/pkg/slogx"
)

func newOktaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "okta",
		Short: "Migrate users from an Okta org",
	}

	cmd.AddCommand(newOktaSetupCmd(a))
	cmd.AddCommand(newOktaFastMigrateCmd(a))
	return cmd
}

func newOktaSetupCmd(a *app) *cobra.Command {
	var cfg domain.OktaConfig

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Store Okta API credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			apiKey, err := secretOrPrompt(cfg.APIKey, "Okta API key")
			if err != nil {
				return err
			}
			cfg.APIKey = apiKey

			return store.SetConfig(ctx, a.store.Settings(), store.KeyOktaConfig, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Domain, "domain", "", "Okta org URL, e.g. https://acme.okta.com")
	cmd.Flags().StringVar(&cfg.APIKey, "api-key", "", "Okta API key (prompted when omitted)")
	cmd.Flags().StringVar(&cfg.RegistrationSyncAttribute, "sync-attribute", "", "Okta profile attribute used to track registration state")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func newOktaFastMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fast-migrate",
		Short: "Create an identity for every active Okta user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := slogx.FromContext(ctx)

			cfg, err := store.GetConfig[domain.OktaConfig](ctx, a.store.Settings(), store.KeyOktaConfig)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("okta is not configured, run 'realmctl okta setup' first")
			}
			if err != nil {
				return err
			}

			oktaClient, err := okta.New(cfg)
			if err != nil {
				return err
			}

			users, err := oktaClient.ListActiveUsers(ctx)
			if err != nil {
				return err
			}
			log.Info("fetched okta users", "count", len(users))

			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			result, err := okta.FastMigrate(ctx, &service.IdentityService{Client: client}, users)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}
