package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loamworks/realmctl/internal/admin/domain"

	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID string `json:"id"`
}

type testPage struct {
	Items         []testItem `json:"identities"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

func (p testPage) PageItems() []testItem { return p.Items }
func (p testPage) NextToken() string     { return p.NextPageToken }

// newPagedServer serves three pages of 200/200/50 items keyed on page_token
// and counts list requests. The bearer token is checked on every call.
func newPagedServer(t *testing.T, listCalls *atomic.Int64) *httptest.Server {
	t.Helper()

	makeItems := func(start, n int) []testItem {
		items := make([]testItem, n)
		for i := range items {
			items[i] = testItem{ID: fmt.Sprintf("id-%04d", start+i)}
		}
		return items
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer cached", r.Header.Get("Authorization"))
		require.Equal(t, "200", r.URL.Query().Get("page_size"))
		listCalls.Add(1)

		var page testPage
		switch r.URL.Query().Get("page_token") {
		case "":
			page = testPage{Items: makeItems(0, 200), NextPageToken: "p2"}
		case "p2":
			page = testPage{Items: makeItems(200, 200), NextPageToken: "p3"}
		case "p3":
			page = testPage{Items: makeItems(400, 50)}
		default:
			http.Error(w, "unknown page token", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}))
}

func newPagedClient(t *testing.T, srvURL string) *Client {
	t.Helper()

	tokens := newMemTokens()
	require.NoError(t, tokens.SetToken(context.Background(), domain.Token{
		AccessToken: "cached",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		TenantID:    "t1",
		RealmID:     "r1",
	}))
	return New(tokens, testScope("t1", "r1", srvURL, srvURL))
}

func TestPaginateAllPages(t *testing.T) {
	t.Parallel()

	var listCalls atomic.Int64
	srv := newPagedServer(t, &listCalls)
	defer srv.Close()

	c := newPagedClient(t, srv.URL)
	u, err := c.URL().API().Tenant().Realm().Path("identities").Build()
	require.NoError(t, err)

	items, total, err := Paginate[testItem, testPage](context.Background(), c, http.MethodGet, u, nil, 0)
	require.NoError(t, err)
	require.Equal(t, 450, total)
	require.Len(t, items, 450)
	require.EqualValues(t, 3, listCalls.Load())

	// Server order is preserved exactly.
	for i, item := range items {
		require.Equal(t, fmt.Sprintf("id-%04d", i), item.ID)
	}
}

func TestPaginateLimitTruncates(t *testing.T) {
	t.Parallel()

	var listCalls atomic.Int64
	srv := newPagedServer(t, &listCalls)
	defer srv.Close()

	c := newPagedClient(t, srv.URL)
	u, err := c.URL().API().Tenant().Realm().Path("identities").Build()
	require.NoError(t, err)

	items, total, err := Paginate[testItem, testPage](context.Background(), c, http.MethodGet, u, nil, 75)
	require.NoError(t, err)
	require.Equal(t, 75, total)
	require.Len(t, items, 75)
	require.EqualValues(t, 1, listCalls.Load(), "no further requests once the limit is reached")
	require.Equal(t, "id-0000", items[0].ID)
	require.Equal(t, "id-0074", items[74].ID)
}

func TestRequestErrorPreservesBody(t *testing.T) {
	t.Parallel()

	const errBody = `{"code":"conflict","message":"identity already exists"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(errBody))
	}))
	defer srv.Close()

	c := newPagedClient(t, srv.URL)
	u, err := c.URL().API().Tenant().Realm().Path("identities").Build()
	require.NoError(t, err)

	t.Run("single request", func(t *testing.T) {
		_, err := Do[testItem](context.Background(), c, http.MethodPost, u, testItem{ID: "dup"})
		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
		require.Equal(t, errBody, apiErr.Body)
	})

	t.Run("paginated request is fatal with no partial result", func(t *testing.T) {
		items, total, err := Paginate[testItem, testPage](context.Background(), c, http.MethodGet, u, nil, 0)
		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
		require.Equal(t, errBody, apiErr.Body)
		require.Nil(t, items)
		require.Zero(t, total)
	})
}

func TestDoDecodesTypedResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ident-1"}`))
	}))
	defer srv.Close()

	c := newPagedClient(t, srv.URL)
	u, err := c.URL().API().Tenant().Realm().Path("identities", "ident-1").Build()
	require.NoError(t, err)

	got, err := Do[testItem](context.Background(), c, http.MethodGet, u, nil)
	require.NoError(t, err)
	require.Equal(t, "ident-1", got.ID)
}
