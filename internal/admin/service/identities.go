// Package service holds the typed resource operations of the administrative
// API. Each service is a thin collaborator over the apiclient engine: it
// composes a URL, delegates the HTTP work, and returns typed records.
package service

import (
	"context"
	"net/http"

	"github.com/loamworks/realmctl/pkg/apiclient"
)

// Identity is an end user (or machine principal) within a realm.
type Identity struct {
	ID          string         `json:"id,omitempty"`
	DisplayName string         `json:"display_name"`
	Status      string         `json:"status,omitempty"`
	Traits      IdentityTraits `json:"traits"`
}

// IdentityTraits carries the typed attributes of an identity.
type IdentityTraits struct {
	Type                string `json:"type"`
	Username            string `json:"username"`
	PrimaryEmailAddress string `json:"primary_email_address,omitempty"`
	ExternalID          string `json:"external_id,omitempty"`
	FamilyName          string `json:"family_name,omitempty"`
	GivenName           string `json:"given_name,omitempty"`
}

// CreateIdentityRequest wraps the identity payload the way the API expects.
type CreateIdentityRequest struct {
	Identity Identity `json:"identity"`
}

// PatchIdentityRequest carries a partial identity update.
type PatchIdentityRequest struct {
	Identity Identity `json:"identity"`
}

// Identities is the accumulated result of a list operation.
type Identities struct {
	Identities []Identity `json:"identities"`
	TotalSize  int        `json:"total_size"`
}

// ListIdentitiesResponse is one page of the identities list.
type ListIdentitiesResponse struct {
	Identities    []Identity `json:"identities"`
	TotalSize     int        `json:"total_size,omitempty"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

func (r ListIdentitiesResponse) PageItems() []Identity { return r.Identities }
func (r ListIdentitiesResponse) NextToken() string     { return r.NextPageToken }

type IdentityService struct {
	Client *apiclient.Client
}

func (s *IdentityService) Create(ctx context.Context, req CreateIdentityRequest) (Identity, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Path("identities").Build()
	if err != nil {
		return Identity{}, err
	}
	return apiclient.Do[Identity](ctx, s.Client, http.MethodPost, u, req)
}

func (s *IdentityService) Get(ctx context.Context, id string) (Identity, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Path("identities", id).Build()
	if err != nil {
		return Identity{}, err
	}
	return apiclient.Do[Identity](ctx, s.Client, http.MethodGet, u, nil)
}

// List returns identities for the scope, optionally filtered, accumulated
// across pages up to limit (0 means no limit).
func (s *IdentityService) List(ctx context.Context, filter apiclient.Filter, limit int) (Identities, error) {
	b := s.Client.URL().API().Tenant().Realm().Path("identities")
	if !filter.IsZero() {
		b = b.Query("filter", filter.Encode())
	}
	u, err := b.Build()
	if err != nil {
		return Identities{}, err
	}

	items, total, err := apiclient.Paginate[Identity, ListIdentitiesResponse](
		ctx, s.Client, http.MethodGet, u, nil, limit,
	)
	if err != nil {
		return Identities{}, err
	}
	return Identities{Identities: items, TotalSize: total}, nil
}

func (s *IdentityService) Patch(ctx context.Context, id string, req PatchIdentityRequest) (Identity, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Path("identities", id).Build()
	if err != nil {
		return Identity{}, err
	}
	return apiclient.Do[Identity](ctx, s.Client, http.MethodPatch, u, req)
}

func (s *IdentityService) Delete(ctx context.Context, id string) error {
	u, err := s.Client.URL().API().Tenant().Realm().Path("identities", id).Build()
	if err != nil {
		return err
	}
	_, err = apiclient.Do[struct{}](ctx, s.Client, http.MethodDelete, u, nil)
	return err
}
