package service

import (
	"context"
	"net/http"

	"github.com/loamworks/realmctl/pkg/apiclient"
)

// PlatformRealm is a realm as the platform reports it. Distinct from the
// locally stored realm record, which additionally carries credentials.
type PlatformRealm struct {
	ID          string `json:"id,omitempty"`
	TenantID    string `json:"tenant_id,omitempty"`
	DisplayName string `json:"display_name"`
	CreateTime  string `json:"create_time,omitempty"`
	UpdateTime  string `json:"update_time,omitempty"`
}

type CreateRealmRequest struct {
	Realm PlatformRealm `json:"realm"`
}

type PatchRealmRequest struct {
	Realm PlatformRealm `json:"realm"`
}

type PlatformRealms struct {
	Realms    []PlatformRealm `json:"realms"`
	TotalSize int             `json:"total_size"`
}

type ListRealmsResponse struct {
	Realms        []PlatformRealm `json:"realms"`
	TotalSize     int             `json:"total_size,omitempty"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

func (r ListRealmsResponse) PageItems() []PlatformRealm { return r.Realms }
func (r ListRealmsResponse) NextToken() string          { return r.NextPageToken }

type RealmService struct {
	Client *apiclient.Client
}

func (s *RealmService) Create(ctx context.Context, req CreateRealmRequest) (PlatformRealm, error) {
	u, err := s.Client.URL().API().Tenant().Path("realms").Build()
	if err != nil {
		return PlatformRealm{}, err
	}
	return apiclient.Do[PlatformRealm](ctx, s.Client, http.MethodPost, u, req)
}

// Get fetches a realm by id, which may differ from the realm the client is
// scoped to.
func (s *RealmService) Get(ctx context.Context, realmID string) (PlatformRealm, error) {
	u, err := s.Client.URL().API().Tenant().RealmID(realmID).Build()
	if err != nil {
		return PlatformRealm{}, err
	}
	return apiclient.Do[PlatformRealm](ctx, s.Client, http.MethodGet, u, nil)
}

func (s *RealmService) List(ctx context.Context, limit int) (PlatformRealms, error) {
	u, err := s.Client.URL().API().Tenant().Path("realms").Build()
	if err != nil {
		return PlatformRealms{}, err
	}

	items, total, err := apiclient.Paginate[PlatformRealm, ListRealmsResponse](
		ctx, s.Client, http.MethodGet, u, nil, limit,
	)
	if err != nil {
		return PlatformRealms{}, err
	}
	return PlatformRealms{Realms: items, TotalSize: total}, nil
}

// Patch updates the realm bound to the client's scope.
func (s *RealmService) Patch(ctx context.Context, req PatchRealmRequest) (PlatformRealm, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Build()
	if err != nil {
		return PlatformRealm{}, err
	}
	return apiclient.Do[PlatformRealm](ctx, s.Client, http.MethodPatch, u, req)
}

func (s *RealmService) Delete(ctx context.Context, realmID string) error {
	u, err := s.Client.URL().API().Tenant().RealmID(realmID).Build()
	if err != nil {
		return err
	}
	_, err = apiclient.Do[struct{}](ctx, s.Client, http.MethodDelete, u, nil)
	return err
}
