package main

import (
	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/service"
)

func newRoleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Inspect authorization roles",
	}

	var (
		resourceServerID string
		limit            int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List roles defined on a resource server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.RoleService{Client: client}
			roles, err := svc.List(ctx, resourceServerID, limit)
			if err != nil {
				return err
			}
			return printJSON(roles)
		},
	}
	listCmd.Flags().StringVar(&resourceServerID, "resource-server-id", "", "Resource server id")
	listCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of roles to return (0 = all)")
	_ = listCmd.MarkFlagRequired("resource-server-id")

	cmd.AddCommand(listCmd)
	return cmd
}
