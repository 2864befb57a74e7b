package main

import (
	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/service"
)

func newRealmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realm",
		Short: "Manage realms in the current tenant",
	}

	cmd.AddCommand(newRealmCreateCmd(a))
	cmd.AddCommand(newRealmGetCmd(a))
	cmd.AddCommand(newRealmListCmd(a))
	cmd.AddCommand(newRealmPatchCmd(a))
	cmd.AddCommand(newRealmDeleteCmd(a))
	return cmd
}

func newRealmCreateCmd(a *app) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a realm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.RealmService{Client: client}
			created, err := svc.Create(ctx, service.CreateRealmRequest{
				Realm: service.PlatformRealm{DisplayName: displayName},
			})
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name")
	_ = cmd.MarkFlagRequired("display-name")

	return cmd
}

func newRealmGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <realm-id>",
		Short: "Fetch a realm by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.RealmService{Client: client}
			realm, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(realm)
		},
	}
}

func newRealmListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List realms in the tenant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.RealmService{Client: client}
			realms, err := svc.List(ctx, limit)
			if err != nil {
				return err
			}
			return printJSON(realms)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of realms to return (0 = all)")

	return cmd
}

func newRealmPatchCmd(a *app) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Update the realm the client is scoped to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.RealmService{Client: client}
			updated, err := svc.Patch(ctx, service.PatchRealmRequest{
				Realm: service.PlatformRealm{DisplayName: displayName},
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

func newRealmDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <realm-id>",
		Short: "Delete a realm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.RealmService{Client: client}
			return svc.Delete(ctx, args[0])
		},
	}
}
