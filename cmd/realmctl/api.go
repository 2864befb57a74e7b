package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/store"
)

func newAPICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Call the management API for the current scope",
	}

	cmd.AddCommand(newIdentityCmd(a))
	cmd.AddCommand(newRealmCmd(a))
	cmd.AddCommand(newGroupCmd(a))
	cmd.AddCommand(newRoleCmd(a))
	cmd.AddCommand(newSSOConfigCmd(a))
	cmd.AddCommand(newTokenCmd(a))
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect or clear the cached access token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cached token and its claims, fetching one if needed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			// Ensure a current token is cached before inspecting it.
			if _, err := client.AccessToken(ctx); err != nil {
				return err
			}

			token, claims, err := client.InspectToken(ctx)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"tenant_id":  token.TenantID,
				"realm_id":   token.RealmID,
				"expires_at": time.Unix(token.ExpiresAt, 0).UTC().Format(time.RFC3339),
				"claims":     claims,
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop the cached token for the current scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			err = client.ClearToken(ctx)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		},
	})

	return cmd
}
