package main

import (
	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/service"
	"github.com/loamworks/realmctl/pkg/apiclient"
)

func newIdentityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage identities in the current realm",
	}

	cmd.AddCommand(newIdentityCreateCmd(a))
	cmd.AddCommand(newIdentityGetCmd(a))
	cmd.AddCommand(newIdentityListCmd(a))
	cmd.AddCommand(newIdentityPatchCmd(a))
	cmd.AddCommand(newIdentityDeleteCmd(a))
	return cmd
}

func newIdentityCreateCmd(a *app) *cobra.Command {
	var (
		displayName string
		username    string
		email       string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.IdentityService{Client: client}
			created, err := svc.Create(ctx, service.CreateIdentityRequest{
				Identity: service.Identity{
					DisplayName: displayName,
					Traits: service.IdentityTraits{
						Type:                "traits_v0",
						Username:            username,
						PrimaryEmailAddress: email,
					},
				},
			})
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Primary email address")
	_ = cmd.MarkFlagRequired("display-name")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newIdentityGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <identity-id>",
		Short: "Fetch an identity by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.IdentityService{Client: client}
			identity, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(identity)
		},
	}
}

func newIdentityListCmd(a *app) *cobra.Command {
	var (
		rawFilter string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List identities, optionally filtered",
		Example: `  realmctl api identity list
  realmctl api identity list --filter 'display_name eq "Jane Doe"' --limit 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var filter apiclient.Filter
			if rawFilter != "" {
				var err error
				filter, err = apiclient.ParseFilter(rawFilter)
				if err != nil {
					return err
				}
			}

			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.IdentityService{Client: client}
			identities, err := svc.List(ctx, filter, limit)
			if err != nil {
				return err
			}
			return printJSON(identities)
		},
	}

	cmd.Flags().StringVar(&rawFilter, "filter", "", `Filter expression, e.g. 'display_name eq "Jane"'`)
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of identities to return (0 = all)")

	return cmd
}

func newIdentityPatchCmd(a *app) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "patch <identity-id>",
		Short: "Update an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.IdentityService{Client: client}
			updated, err := svc.Patch(ctx, args[0], service.PatchIdentityRequest{
				Identity: service.Identity{DisplayName: displayName},
			})
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "New display name")
	_ = cmd.MarkFlagRequired("display-name")

	return cmd
}

func newIdentityDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <identity-id>",
		Short: "Delete an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.IdentityService{Client: client}
			return svc.Delete(ctx, args[0])
		},
	}
}
