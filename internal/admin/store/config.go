package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Fixed settings keys. One value of each kind exists at a time; writes
// replace the prior blob wholesale.
const (
	KeyOktaConfig        = "okta_config"
	KeyOneLoginConfig    = "onelogin_config"
	KeyOpenAIConfig      = "openai_config"
	KeyAnthropicConfig   = "anthropic_config"
	KeyDefaultAIProvider = "default_ai_provider"
)

// GetConfig loads and decodes a settings blob. ErrNotFound passes through
// untouched so callers can distinguish "never configured" from corruption;
// malformed stored JSON surfaces as an error rather than being dropped.
func GetConfig[T any](ctx context.Context, s Settings, key string) (T, error) {
	var out T

	raw, err := s.GetValue(ctx, key)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode setting %q: %w", key, err)
	}
	return out, nil
}

// SetConfig encodes and stores a settings blob under key.
func SetConfig[T any](ctx context.Context, s Settings, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}
	return s.SetValue(ctx, key, raw)
}
