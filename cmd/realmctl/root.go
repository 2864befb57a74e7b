package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/config"
	"github.com/loamworks/realmctl/internal/admin/store"
	"github.com/loamworks/realmctl/internal/admin/store/drivers/sqlite"
	"github.com/loamworks/realmctl/pkg/apiclient"
	"github.com/loamworks/realmctl/pkg/idx"
	"github.com/loamworks/realmctl/pkg/slogx"
)

var version = "dev"

// app carries the wiring every command needs: loaded config, the open store,
// and the scope override flags. The platform client is built lazily because
// local-only commands (tenant list, setup) never need one.
type app struct {
	cfg   config.Config
	store store.Store

	tenantID string
	realmID  string
}

// client resolves the tenant/realm scope once, from the override flags or
// the stored default, and returns a client bound to it.
func (a *app) client(ctx context.Context) (*apiclient.Client, error) {
	scope, err := apiclient.ResolveScope(ctx, a.store, a.tenantID, a.realmID)
	if err != nil {
		return nil, err
	}

	c := apiclient.New(a.store.Tokens(), scope)
	c.HTTPClient.Timeout = a.cfg.HTTPTimeout
	c.PageSize = a.cfg.PageSize
	return c, nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	a := &app{}
	rootCmd := newRootCmd(a)

	err := rootCmd.Execute()
	if a.store != nil {
		_ = a.store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "realmctl",
		Short:         "Administrative client for the identity platform",
		Long:          "Manage tenants, realms, identities and SSO configurations, and migrate users from Okta or OneLogin.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg

			logger := slogx.New(slogx.Config{
				Service: "realmctl",
				Version: version,
				Level:   cfg.LogLevel,
				Format:  cfg.LogFormat,
			})

			st, err := sqlite.Open(cfg.DatabaseFile)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			if err := st.ApplyMigrations(); err != nil {
				_ = st.Close()
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			a.store = st

			ctx := slogx.WithContext(cmd.Context(), logger)
			ctx = slogx.WithRunID(ctx, idx.New().String())
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.tenantID, "tenant-id", "", "Tenant id (overrides the default selection)")
	rootCmd.PersistentFlags().StringVar(&a.realmID, "realm-id", "", "Realm id (overrides the default selection)")

	rootCmd.AddCommand(newTenantCmd(a))
	rootCmd.AddCommand(newAPICmd(a))
	rootCmd.AddCommand(newOktaCmd(a))
	rootCmd.AddCommand(newOneLoginCmd(a))
	rootCmd.AddCommand(newAICmd(a))

	return rootCmd
}
