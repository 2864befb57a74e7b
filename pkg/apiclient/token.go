package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/store"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew is the safety margin before expiry at which a cached token is
// considered stale and exchanged for a fresh one.
const expirySkew = 30 * time.Second

// tokenResponse is the client-credentials exchange response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// AccessToken returns a currently valid bearer token for the client's scope.
// A cached token with more than the safety margin of lifetime left is reused
// without any network call; otherwise one client-credentials exchange runs
// against the realm's auth endpoint and the result replaces the cached row.
// Concurrent in-process refreshes for the same scope are collapsed into a
// single exchange.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	tok, err := c.Tokens.GetToken(ctx, c.Scope.Tenant.ID, c.Scope.Realm.ID)
	if err == nil && !tok.ExpiresWithin(expirySkew) {
		return tok.AccessToken, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	key := c.Scope.Tenant.ID + "/" + c.Scope.Realm.ID
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.exchange(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(domain.Token).AccessToken, nil
}

// exchange performs one client-credentials grant and persists the result,
// replacing any prior token for the scope.
func (c *Client) exchange(ctx context.Context) (domain.Token, error) {
	realm := c.Scope.Realm

	endpoint, err := c.URL().Auth().Tenant().Realm().
		Path("applications", realm.ApplicationID, "token").
		Build()
	if err != nil {
		return domain.Token{}, err
	}

	data := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {realm.ClientID},
		"client_secret": {realm.ClientSecret},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint,
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return domain.Token{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return domain.Token{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Token{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Token{}, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return domain.Token{}, fmt.Errorf("failed to decode token response: %w", err)
	}

	// A response without a lifetime is stored as already expired rather than
	// guessing a default; the next call exchanges again.
	expiresAt := time.Now().Unix()
	if tr.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second).Unix()
	}

	tok := domain.Token{
		AccessToken:   tr.AccessToken,
		ExpiresAt:     expiresAt,
		TenantID:      c.Scope.Tenant.ID,
		RealmID:       realm.ID,
		ApplicationID: realm.ApplicationID,
	}
	if err := c.Tokens.SetToken(ctx, tok); err != nil {
		return domain.Token{}, err
	}
	return tok, nil
}

// ClearToken drops the cached token for the client's scope, forcing the next
// call to exchange fresh credentials.
func (c *Client) ClearToken(ctx context.Context) error {
	return c.Tokens.DeleteToken(ctx, c.Scope.Tenant.ID, c.Scope.Realm.ID)
}

// InspectToken returns the cached token for the scope along with its decoded
// JWT claims. The signature is NOT verified; this is a debugging aid for the
// operator, not an authorization decision.
func (c *Client) InspectToken(ctx context.Context) (domain.Token, jwt.MapClaims, error) {
	tok, err := c.Tokens.GetToken(ctx, c.Scope.Tenant.ID, c.Scope.Realm.ID)
	if err != nil {
		return domain.Token{}, nil, err
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok.AccessToken, claims); err != nil {
		return tok, nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return tok, claims, nil
}
