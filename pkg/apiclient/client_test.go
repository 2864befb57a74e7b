package apiclient

import (
	"context"
	"sync"

	"github.com/loamworks/realmctl/internal/admin/domain"
	"github.com/loamworks/realmctl/internal/admin/store"
)

// memTokens is an in-memory store.Tokens for tests.
type memTokens struct {
	mu sync.Mutex
	m  map[string]domain.Token
}

func newMemTokens() *memTokens {
	return &memTokens{m: make(map[string]domain.Token)}
}

func (s *memTokens) key(tenantID, realmID string) string {
	return tenantID + "/" + realmID
}

func (s *memTokens) GetToken(_ context.Context, tenantID, realmID string) (domain.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.m[s.key(tenantID, realmID)]
	if !ok {
		return domain.Token{}, store.ErrNotFound
	}
	return tok, nil
}

func (s *memTokens) SetToken(_ context.Context, token domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[s.key(token.TenantID, token.RealmID)] = token
	return nil
}

func (s *memTokens) DeleteToken(_ context.Context, tenantID, realmID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, s.key(tenantID, realmID))
	return nil
}

func testScope(tenantID, realmID, authBase, apiBase string) Scope {
	return Scope{
		Tenant: domain.Tenant{ID: tenantID},
		Realm: domain.Realm{
			ID:            realmID,
			TenantID:      tenantID,
			ApplicationID: "app-" + realmID,
			ClientID:      "client-" + realmID,
			ClientSecret:  "secret-" + realmID,
			AuthBaseURL:   authBase,
			APIBaseURL:    apiBase,
		},
	}
}
