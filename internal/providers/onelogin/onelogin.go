// Package onelogin fetches applications and their assigned users from a
// OneLogin account and migrates them into platform SSO tiles.
package onelogin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/pkg/apiclient"
	"github.com/loamworks/realmctl/pkg/httpx"
)

// Client is a minimal REST client for the OneLogin v2 API. OneLogin has no
// official Go SDK, so this speaks the API directly through a rate-limited
// HTTP client.
type Client struct {
	HTTPClient *http.Client

	domain       string
	clientID     string
	clientSecret string

	accessToken string
}

// Application is a OneLogin app with the users assigned to it.
type Application struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Visible       bool   `json:"visible"`
	IconURL       string `json:"icon_url"`
	LoginLink     string `json:"login_url"`
	AssignedUsers []User `json:"users"`
}

// User is a OneLogin user as reported by the app-users endpoint.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// New creates a OneLogin client from the stored integration config.
func New(cfg domain.OneLoginConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.Domain), "/")
	if base == "" {
		return nil, fmt.Errorf("onelogin domain is required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("onelogin client credentials are required")
	}

	return &Client{
		HTTPClient:   httpx.NewRateLimitedClient(httpx.ProviderLimit, 30*time.Second),
		domain:       base,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// authenticate obtains a bearer token via the client-credentials grant and
// caches it for the lifetime of the client.
func (c *Client) authenticate(ctx context.Context) error {
	if c.accessToken != "" {
		return nil
	}

	payload := map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	}

	var token tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, c.domain+"/auth/oauth2/v2/token", payload, &token); err != nil {
		return err
	}
	if token.AccessToken == "" {
		return fmt.Errorf("onelogin token response missing access_token")
	}

	c.accessToken = token.AccessToken
	return nil
}

// ListApplications returns every app in the account, each enriched with its
// assigned users and a launch link.
func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	if err := c.authenticate(ctx); err != nil {
		return nil, err
	}

	var apps []Application
	if err := c.doJSON(ctx, http.MethodGet, c.domain+"/api/2/apps", nil, &apps); err != nil {
		return nil, err
	}

	for i := range apps {
		app := &apps[i]

		// The list endpoint omits icon_url, so fetch each app individually.
		var detail Application
		url := fmt.Sprintf("%s/api/2/apps/%d", c.domain, app.ID)
		if err := c.doJSON(ctx, http.MethodGet, url, nil, &detail); err != nil {
			return nil, err
		}
		app.IconURL = detail.IconURL

		users, err := c.listAppUsers(ctx, app.ID)
		if err != nil {
			return nil, err
		}
		app.AssignedUsers = users
		app.LoginLink = fmt.Sprintf("%s/launch/%d", c.domain, app.ID)
	}

	return apps, nil
}

func (c *Client) listAppUsers(ctx context.Context, appID int64) ([]User, error) {
	var users []User
	url := fmt.Sprintf("%s/api/2/apps/%d/users", c.domain, appID)
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// doJSON performs one request, failing with the response body preserved on
// non-2xx statuses.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiclient.APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}
