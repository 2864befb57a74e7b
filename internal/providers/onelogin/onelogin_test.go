package onelogin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/service"
	"github.com/loamworks/realmctl/pkg/apiclient"

	"github.com/stretchr/testify/require"
)

func newOneLoginServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/oauth2/v2/token", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "client_credentials", req["grant_type"])
		require.Equal(t, "cid", req["client_id"])
		require.Equal(t, "secret", req["client_secret"])

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "ol-token"})
	})
	mux.HandleFunc("GET /api/2/apps", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer ol-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]Application{
			{ID: 11, Name: "Payroll", Visible: true},
		})
	})
	mux.HandleFunc("GET /api/2/apps/11", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Application{ID: 11, Name: "Payroll", IconURL: "https://cdn/icon.png"})
	})
	mux.HandleFunc("GET /api/2/apps/11/users", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]User{
			{ID: 7, Email: "jane@example.com", Username: "jane"},
		})
	})

	return httptest.NewServer(mux)
}

func TestListApplications(t *testing.T) {
	t.Parallel()

	srv := newOneLoginServer(t)
	defer srv.Close()

	client, err := New(domain.OneLoginConfig{
		Domain:       srv.URL,
		ClientID:     "cid",
		ClientSecret: "secret",
	})
	require.NoError(t, err)

	apps, err := client.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)

	app := apps[0]
	require.Equal(t, "Payroll", app.Name)
	require.Equal(t, "https://cdn/icon.png", app.IconURL)
	require.Equal(t, srv.URL+"/launch/11", app.LoginLink)
	require.Len(t, app.AssignedUsers, 1)
	require.Equal(t, "jane@example.com", app.AssignedUsers[0].Email)
}

func TestAuthenticateFailurePreservesBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := New(domain.OneLoginConfig{
		Domain:       srv.URL,
		ClientID:     "cid",
		ClientSecret: "wrong",
	})
	require.NoError(t, err)

	_, err = client.ListApplications(context.Background())
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "invalid_client")
}

func TestMatchIdentities(t *testing.T) {
	t.Parallel()

	users := []User{
		{Email: "jane@example.com"},
		{Email: "bob@example.com"},
		{}, // no email
	}
	identities := []service.Identity{
		{ID: "i1", Traits: service.IdentityTraits{PrimaryEmailAddress: "jane@example.com"}},
		{ID: "i2", Traits: service.IdentityTraits{PrimaryEmailAddress: "other@example.com"}},
		{ID: "i3", Traits: service.IdentityTraits{PrimaryEmailAddress: "bob@example.com"}},
	}

	require.Equal(t, []string{"i1", "i3"}, matchIdentities(users, identities))
}
