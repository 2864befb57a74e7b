// Package okta fetches users from an Okta org and migrates them into
// platform identities.
package okta

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/okta/okta-sdk-golang/v6/okta"

	"github.com/loamworks/realmctl/internal/admin/domain"
)

// Client wraps the Okta management SDK for the read paths migration needs.
type Client struct {
	Domain string
	api    *sdk.APIClient
}

// User is the subset of an Okta user record migration cares about.
type User struct {
	ID          string
	Email       string
	Login       string
	DisplayName string
	Status      string
}

// New creates an Okta client from the stored integration config. The SDK
// handles 429 backoff itself, so bulk reads survive org rate limits.
func New(cfg domain.OktaConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.Domain), "/")
	token := strings.TrimSpace(cfg.APIKey)

	if base == "" {
		return nil, errors.New("okta domain is required")
	}
	if token == "" {
		return nil, errors.New("okta api key is required")
	}

	c, err := sdk.NewConfiguration(
		sdk.WithOrgUrl(base),
		sdk.WithToken(token),
		sdk.WithCache(false),
		sdk.WithRequestTimeout(120),
		sdk.WithRateLimitMaxBackOff(30),
		sdk.WithRateLimitMaxRetries(4),
	)
	if err != nil {
		return nil, fmt.Errorf("okta sdk config: %w", err)
	}

	return &Client{Domain: base, api: sdk.NewAPIClient(c)}, nil
}

// ListActiveUsers pages through every ACTIVE user in the org.
func (c *Client) ListActiveUsers(ctx context.Context) ([]User, error) {
	req := c.api.UserAPI.ListUsers(ctx).
		Filter(`status eq "ACTIVE"`).
		Limit(200)

	users, resp, err := req.Execute()
	if err != nil {
		return nil, formatOktaError(err, resp)
	}

	var out []User
	for {
		for _, u := range users {
			out = append(out, mapUser(u))
		}
		if resp == nil || !resp.HasNextPage() {
			break
		}
		var next []sdk.User
		resp, err = resp.Next(&next)
		if err != nil {
			return nil, formatOktaError(err, resp)
		}
		users = next
	}
	return out, nil
}

func mapUser(u sdk.User) User {
	email := ""
	login := ""
	display := ""
	first := ""
	last := ""
	if p := u.Profile; p != nil {
		email = p.GetEmail()
		login = p.GetLogin()
		display = p.GetDisplayName()
		first = p.GetFirstName()
		last = p.GetLastName()
	}
	if email == "" {
		email = login
	}
	if display == "" {
		display = strings.TrimSpace(first + " " + last)
	}
	return User{
		ID:          u.GetId(),
		Email:       email,
		Login:       login,
		DisplayName: display,
		Status:      u.GetStatus(),
	}
}

func formatOktaError(err error, resp *sdk.APIResponse) error {
	if err == nil {
		return nil
	}
	status := ""
	if resp != nil && resp.Response != nil {
		status = resp.Response.Status
	}

	var apiErr *sdk.GenericOpenAPIError
	if errors.As(err, &apiErr) {
		if model, ok := apiErr.Model().(sdk.Error); ok {
			if summary := strings.TrimSpace(model.GetErrorSummary()); summary != "" {
				if status != "" {
					return fmt.Errorf("okta api error: %s: %s", status, summary)
				}
				return fmt.Errorf("okta api error: %s", summary)
			}
		}
	}
	if status != "" {
		return fmt.Errorf("okta api error: %s: %w", status, err)
	}
	return fmt.Errorf("okta api error: %w", err)
}
