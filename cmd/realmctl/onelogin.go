package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/service"
	"github.com/loamworks/realmctl/internal/admin/store"
	"github.com/loamworks/realmctl/internal/providers/onelogin"
	"github.com/loamworks/realmctl/pkg/slogx"
)

func newOneLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onelogin",
		Short: "Migrate applications from a OneLogin account",
	}

	cmd.AddCommand(newOneLoginSetupCmd(a))
	cmd.AddCommand(newOneLoginFastMigrateCmd(a))
	return cmd
}

func newOneLoginSetupCmd(a *app) *cobra.Command {
	var cfg domain.OneLoginConfig

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Store OneLogin API credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			secret, err := secretOrPrompt(cfg.ClientSecret, "OneLogin client secret")
			if err != nil {
				return err
			}
			cfg.ClientSecret = secret

			return store.SetConfig(ctx, a.store.Settings(), store.KeyOneLoginConfig, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Domain, "domain", "", "OneLogin account URL, e.g. https://acme.onelogin.com")
	cmd.Flags().StringVar(&cfg.ClientID, "client-id", "", "OneLogin API client id")
	cmd.Flags().StringVar(&cfg.ClientSecret, "client-secret", "", "OneLogin API client secret (prompted when omitted)")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("client-id")

	return cmd
}

func newOneLoginFastMigrateCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "fast-migrate",
		Short: "Create SSO tiles for selected OneLogin applications",
		Long:  "Fetches applications from OneLogin, creates a bookmark SSO tile for each selected one, and grants access to identities whose email matches a user assigned to the app.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := slogx.FromContext(ctx)

			cfg, err := store.GetConfig[domain.OneLoginConfig](ctx, a.store.Settings(), store.KeyOneLoginConfig)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("onelogin is not configured, run 'realmctl onelogin setup' first")
			}
			if err != nil {
				return err
			}

			olClient, err := onelogin.New(cfg)
			if err != nil {
				return err
			}

			apps, err := olClient.ListApplications(ctx)
			if err != nil {
				return err
			}
			if len(apps) == 0 {
				return fmt.Errorf("no applications found in the onelogin account")
			}

			selected := apps
			if !all {
				selected, err = selectApplications(apps)
				if err != nil {
					return err
				}
			}

			client, err := a.client(ctx)
			if err != nil {
				return err
			}
			ssoConfigs := &service.SSOConfigService{Client: client}
			identities := &service.IdentityService{Client: client}

			var results []onelogin.MigrateResult
			for _, app := range selected {
				result, err := onelogin.MigrateApplication(ctx, ssoConfigs, identities, app)
				if err != nil {
					return fmt.Errorf("failed to migrate %q: %w", app.Name, err)
				}
				log.Info("migrated application", "app", app.Name, "assigned", result.Assigned)
				results = append(results, result)
			}
			return printJSON(results)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Migrate every application without prompting")

	return cmd
}

// selectApplications prompts for a comma separated list of indices, or 'all'.
func selectApplications(apps []onelogin.Application) ([]onelogin.Application, error) {
	fmt.Fprintln(os.Stderr, "Select applications to migrate (comma separated indices, or 'all'):")
	for i, app := range apps {
		fmt.Fprintf(os.Stderr, "%d: %s (id %d, visible: %t)\n", i, app.Name, app.ID, app.Visible)
	}
	fmt.Fprint(os.Stderr, "Your selection: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	line = strings.TrimSpace(line)

	if line == "all" {
		return apps, nil
	}

	var selected []onelogin.Application
	for _, part := range strings.Split(line, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 || idx >= len(apps) {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		selected = append(selected, apps[idx])
	}
	return selected, nil
}
