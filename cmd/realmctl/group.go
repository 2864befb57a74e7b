package main

import (
	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/service"
)

func newGroupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups in the current realm",
	}

	cmd.AddCommand(newGroupCreateCmd(a))
	cmd.AddCommand(newGroupGetCmd(a))
	cmd.AddCommand(newGroupListCmd(a))
	cmd.AddCommand(newGroupPatchCmd(a))
	cmd.AddCommand(newGroupDeleteCmd(a))
	cmd.AddCommand(newGroupMembersCmd(a))
	return cmd
}

func newGroupCreateCmd(a *app) *cobra.Command {
	var displayName, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.GroupService{Client: client}
			created, err := svc.Create(ctx, service.CreateGroupRequest{
				Group: service.Group{DisplayName: displayName, Description: description},
			})
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("display-name")

	return cmd
}

func newGroupGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <group-id>",
		Short: "Fetch a group by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.GroupService{Client: client}
			group, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(group)
		},
	}
}

func newGroupListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups in the realm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.GroupService{Client: client}
			groups, err := svc.List(ctx, limit)
			if err != nil {
				return err
			}
			return printJSON(groups)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of groups to return (0 = all)")

	return cmd
}

func newGroupPatchCmd(a *app) *cobra.Command {
	var displayName, description string

	cmd := &cobra.Command{
		Use:   "patch <group-id>",
		Short: "Update a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.GroupService{Client: client}
			updated, err := svc.Patch(ctx, args[0], service.PatchGroupRequest{
				Group: service.Group{DisplayName: displayName, Description: description},
			})
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "New display name")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newGroupDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.GroupService{Client: client}
			return svc.Delete(ctx, args[0])
		},
	}
}

func newGroupMembersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage group membership",
	}

	var listLimit int
	listCmd := &cobra.Command{
		Use:   "list <group-id>",
		Short: "List identities in a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.GroupService{Client: client}
			members, err := svc.ListMembers(ctx, args[0], listLimit)
			if err != nil {
				return err
			}
			return printJSON(members)
		},
	}
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of members to return (0 = all)")

	var addIDs []string
	addCmd := &cobra.Command{
		Use:   "add <group-id>",
		Short: "Add identities to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.GroupService{Client: client}
			return svc.AddMembers(ctx, args[0], service.GroupMembersRequest{IdentityIDs: addIDs})
		},
	}
	addCmd.Flags().StringSliceVar(&addIDs, "identity-id", nil, "Identity id to add (repeatable)")
	_ = addCmd.MarkFlagRequired("identity-id")

	var removeIDs []string
	removeCmd := &cobra.Command{
		Use:   "remove <group-id>",
		Short: "Remove identities from a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.GroupService{Client: client}
			return svc.DeleteMembers(ctx, args[0], service.GroupMembersRequest{IdentityIDs: removeIDs})
		},
	}
	removeCmd.Flags().StringSliceVar(&removeIDs, "identity-id", nil, "Identity id to remove (repeatable)")
	_ = removeCmd.MarkFlagRequired("identity-id")

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}
