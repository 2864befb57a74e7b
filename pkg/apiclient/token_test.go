package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/store"

	"github.com/stretchr/testify/require"
)

// newTokenServer serves the client-credentials token endpoint and counts
// exchanges.
func newTokenServer(t *testing.T, body string, status int, exchanges *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.FormValue("grant_type"))
		exchanges.Add(1)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestAccessTokenCacheHit(t *testing.T) {
	t.Parallel()

	var exchanges atomic.Int64
	srv := newTokenServer(t, `{"access_token":"fresh","expires_in":3600}`, http.StatusOK, &exchanges)
	defer srv.Close()

	tokens := newMemTokens()
	c := New(tokens, testScope("t1", "r1", srv.URL, srv.URL))

	cached := domain.Token{
		AccessToken:   "cached",
		ExpiresAt:     time.Now().Add(time.Hour).Unix(),
		TenantID:      "t1",
		RealmID:       "r1",
		ApplicationID: "app-r1",
	}
	require.NoError(t, tokens.SetToken(context.Background(), cached))

	got, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "cached", got)
	require.EqualValues(t, 0, exchanges.Load(), "cache hit must not touch the network")
}

func TestAccessTokenRefreshesExpired(t *testing.T) {
	t.Parallel()

	var exchanges atomic.Int64
	srv := newTokenServer(t, `{"access_token":"fresh","expires_in":3600}`, http.StatusOK, &exchanges)
	defer srv.Close()

	tokens := newMemTokens()
	c := New(tokens, testScope("t1", "r1", srv.URL, srv.URL))

	stale := domain.Token{
		AccessToken:   "stale",
		ExpiresAt:     time.Now().Add(-time.Minute).Unix(),
		TenantID:      "t1",
		RealmID:       "r1",
		ApplicationID: "app-r1",
	}
	require.NoError(t, tokens.SetToken(context.Background(), stale))

	got, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fresh", got)
	require.EqualValues(t, 1, exchanges.Load(), "exactly one exchange for a stale token")

	// The replacement is persisted and reused without another exchange.
	got, err = c.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fresh", got)
	require.EqualValues(t, 1, exchanges.Load())
}

func TestAccessTokenScopeIsolation(t *testing.T) {
	t.Parallel()

	var exchanges atomic.Int64
	srv := newTokenServer(t, `{"access_token":"r2-token","expires_in":3600}`, http.StatusOK, &exchanges)
	defer srv.Close()

	// One shared cache, two realms.
	tokens := newMemTokens()
	require.NoError(t, tokens.SetToken(context.Background(), domain.Token{
		AccessToken: "r1-token",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		TenantID:    "t1",
		RealmID:     "r1",
	}))

	c2 := New(tokens, testScope("t1", "r2", srv.URL, srv.URL))
	got, err := c2.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "r2-token", got, "r1's cached token must never serve r2")
	require.EqualValues(t, 1, exchanges.Load())
}

func TestAccessTokenExchangeFailure(t *testing.T) {
	t.Parallel()

	var exchanges atomic.Int64
	srv := newTokenServer(t, `{"error":"invalid_client"}`, http.StatusUnauthorized, &exchanges)
	defer srv.Close()

	c := New(newMemTokens(), testScope("t1", "r1", srv.URL, srv.URL))

	_, err := c.AccessToken(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, `{"error":"invalid_client"}`, apiErr.Body)
}

func TestAccessTokenMissingLifetime(t *testing.T) {
	t.Parallel()

	var exchanges atomic.Int64
	srv := newTokenServer(t, `{"access_token":"no-lifetime"}`, http.StatusOK, &exchanges)
	defer srv.Close()

	tokens := newMemTokens()
	c := New(tokens, testScope("t1", "r1", srv.URL, srv.URL))

	got, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "no-lifetime", got)

	// Stored as already expired: the next call exchanges again instead of
	// trusting a guessed lifetime.
	_, err = c.AccessToken(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, exchanges.Load())
}

func TestClearToken(t *testing.T) {
	t.Parallel()

	tokens := newMemTokens()
	c := New(tokens, testScope("t1", "r1", "https://auth.x", "https://x"))

	require.NoError(t, tokens.SetToken(context.Background(), domain.Token{
		AccessToken: "tok", TenantID: "t1", RealmID: "r1",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))

	require.NoError(t, c.ClearToken(context.Background()))

	_, err := tokens.GetToken(context.Background(), "t1", "r1")
	require.ErrorIs(t, err, store.ErrNotFound)
}
