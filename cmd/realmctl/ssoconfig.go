package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/service"
)

func newSSOConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sso-config",
		Short: "Manage SSO tiles in the current realm",
	}

	cmd.AddCommand(newSSOConfigCreateCmd(a))
	cmd.AddCommand(newSSOConfigGetCmd(a))
	cmd.AddCommand(newSSOConfigListCmd(a))
	cmd.AddCommand(newSSOConfigPatchCmd(a))
	cmd.AddCommand(newSSOConfigDeleteCmd(a))
	return cmd
}

func parsePayload(raw string) (json.RawMessage, error) {
	if raw == "" {
		return nil, nil
	}
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

func newSSOConfigCreateCmd(a *app) *cobra.Command {
	var displayName, rawPayload string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an SSO tile",
		Example: `  realmctl api sso-config create --display-name Payroll \
    --payload '{"type":"bookmark","login_link":"https://payroll.example.com"}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			payload, err := parsePayload(rawPayload)
			if err != nil {
				return err
			}

			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.SSOConfigService{Client: client}
			created, err := svc.Create(ctx, service.CreateSSOConfigRequest{
				SSOConfig: service.SSOConfig{DisplayName: displayName, Payload: payload},
			})
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&rawPayload, "payload", "", "Tile payload as a JSON document")
	_ = cmd.MarkFlagRequired("display-name")

	return cmd
}

func newSSOConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <sso-config-id>",
		Short: "Fetch an SSO tile by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.SSOConfigService{Client: client}
			cfg, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cfg)
		},
	}
}

func newSSOConfigListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List SSO tiles in the realm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.SSOConfigService{Client: client}
			configs, err := svc.List(ctx, limit)
			if err != nil {
				return err
			}
			return printJSON(configs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of tiles to return (0 = all)")

	return cmd
}

func newSSOConfigPatchCmd(a *app) *cobra.Command {
	var displayName, rawPayload string

	cmd := &cobra.Command{
		Use:   "patch <sso-config-id>",
		Short: "Update an SSO tile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			payload, err := parsePayload(rawPayload)
			if err != nil {
				return err
			}

			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.SSOConfigService{Client: client}
			updated, err := svc.Patch(ctx, args[0], service.PatchSSOConfigRequest{
				SSOConfig: service.SSOConfig{DisplayName: displayName, Payload: payload},
			})
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "New display name")
	cmd.Flags().StringVar(&rawPayload, "payload", "", "Replacement payload as a JSON document")

	return cmd
}

func newSSOConfigDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sso-config-id>",
		Short: "Delete an SSO tile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx)
			if err != nil {
				return err
			}

			svc := &service.SSOConfigService{Client: client}
			return svc.Delete(ctx, args[0])
		},
	}
}
