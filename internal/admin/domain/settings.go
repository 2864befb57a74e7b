package domain

// Settings blobs are opaque JSON values stored under fixed keys in the
// settings table. Last write wins; at most one of each kind exists.

// OktaConfig holds the credentials needed to read users and applications out
// of an Okta org during migration.
type OktaConfig struct {
	Domain                    string `json:"domain"`
	APIKey                    string `json:"api_key"`
	RegistrationSyncAttribute string `json:"registration_sync_attribute,omitempty"`
}

// OneLoginConfig holds OneLogin API credentials for migration.
type OneLoginConfig struct {
	Domain       string `json:"domain"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// OpenAIConfig holds an OpenAI API key for the AI helper commands.
type OpenAIConfig struct {
	APIKey string `json:"api_key"`
}

// AnthropicConfig holds an Anthropic API key for the AI helper commands.
type AnthropicConfig struct {
	APIKey string `json:"api_key"`
}

// AIProvider selects which stored AI configuration helper commands use.
type AIProvider string

const (
	AIProviderOpenAI    AIProvider = "openai"
	AIProviderAnthropic AIProvider = "anthropic"
)
