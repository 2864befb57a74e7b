package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/store"
)

func newAICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Manage stored AI provider credentials",
	}

	cmd.AddCommand(newAISetupCmd(a))
	cmd.AddCommand(newAIProviderCmd(a))
	return cmd
}

func newAISetupCmd(a *app) *cobra.Command {
	var provider, apiKey string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Store an API key for an AI provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			key, err := secretOrPrompt(apiKey, "API key")
			if err != nil {
				return err
			}

			switch domain.AIProvider(provider) {
			case domain.AIProviderOpenAI:
				return store.SetConfig(ctx, a.store.Settings(), store.KeyOpenAIConfig,
					domain.OpenAIConfig{APIKey: key})
			case domain.AIProviderAnthropic:
				return store.SetConfig(ctx, a.store.Settings(), store.KeyAnthropicConfig,
					domain.AnthropicConfig{APIKey: key})
			default:
				return fmt.Errorf("unknown provider %q: use %q or %q",
					provider, domain.AIProviderOpenAI, domain.AIProviderAnthropic)
			}
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider name (openai or anthropic)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Provider API key (prompted when omitted)")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}

func newAIProviderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "provider [name]",
		Short: "Show or set the default AI provider",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 0 {
				provider, err := store.GetConfig[domain.AIProvider](ctx, a.store.Settings(), store.KeyDefaultAIProvider)
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no default ai provider set")
				}
				if err != nil {
					return err
				}
				return printJSON(map[string]domain.AIProvider{"provider": provider})
			}

			provider := domain.AIProvider(args[0])
			if provider != domain.AIProviderOpenAI && provider != domain.AIProviderAnthropic {
				return fmt.Errorf("unknown provider %q: use %q or %q",
					args[0], domain.AIProviderOpenAI, domain.AIProviderAnthropic)
			}
			return store.SetConfig(ctx, a.store.Settings(), store.KeyDefaultAIProvider, provider)
		},
	}
}
