package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/store"
	"github.com/loamworks/realmctl/pkg/apiclient"

	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token domain.Token
}

func (s staticTokens) GetToken(context.Context, string, string) (domain.Token, error) {
	if s.token.AccessToken == "" {
		return domain.Token{}, store.ErrNotFound
	}
	return s.token, nil
}
func (staticTokens) SetToken(context.Context, domain.Token) error      { return nil }
func (staticTokens) DeleteToken(context.Context, string, string) error { return nil }

func newTestClient(srvURL string) *apiclient.Client {
	tokens := staticTokens{token: domain.Token{
		AccessToken: "test-token",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		TenantID:    "t1",
		RealmID:     "r1",
	}}
	return apiclient.New(tokens, apiclient.Scope{
		Tenant: domain.Tenant{ID: "t1"},
		Realm: domain.Realm{
			ID:          "r1",
			TenantID:    "t1",
			AuthBaseURL: srvURL,
			APIBaseURL:  srvURL,
		},
	})
}

func TestIdentityServiceList(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/tenants/t1/realms/r1/identities", r.URL.Path)
		require.Equal(t, `display_name eq "Jane"`, r.URL.Query().Get("filter"))

		_ = json.NewEncoder(w).Encode(ListIdentitiesResponse{
			Identities: []Identity{
				{ID: "i1", DisplayName: "Jane"},
				{ID: "i2", DisplayName: "Jane"},
			},
		})
	}))
	defer srv.Close()

	svc := &IdentityService{Client: newTestClient(srv.URL)}

	filter, err := apiclient.NewFilter("display_name", "eq", "Jane")
	require.NoError(t, err)

	got, err := svc.List(context.Background(), filter, 0)
	require.NoError(t, err)
	require.Equal(t, 2, got.TotalSize)
	require.Equal(t, "i1", got.Identities[0].ID)
	require.Equal(t, "i2", got.Identities[1].ID)
}

func TestIdentityServiceCreate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/tenants/t1/realms/r1/identities", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req CreateIdentityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		created := req.Identity
		created.ID = "i-new"
		_ = json.NewEncoder(w).Encode(created)
	}))
	defer srv.Close()

	svc := &IdentityService{Client: newTestClient(srv.URL)}

	got, err := svc.Create(context.Background(), CreateIdentityRequest{
		Identity: Identity{
			DisplayName: "Jane Doe",
			Traits:      IdentityTraits{Type: "traits_v0", Username: "jdoe"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "i-new", got.ID)
	require.Equal(t, "jdoe", got.Traits.Username)
}

func TestIdentityServiceDeletePropagatesError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "identity not found", http.StatusNotFound)
	}))
	defer srv.Close()

	svc := &IdentityService{Client: newTestClient(srv.URL)}

	err := svc.Delete(context.Background(), "missing")
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
