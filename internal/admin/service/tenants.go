package service

import (
	"context"
	"net/http"

	"github.com/loamworks/realmctl/pkg/apiclient"
)

// PlatformTenant is the tenant record as the platform reports it.
type PlatformTenant struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
	CreateTime  string `json:"create_time,omitempty"`
	UpdateTime  string `json:"update_time,omitempty"`
}

type PatchTenantRequest struct {
	Tenant PlatformTenant `json:"tenant"`
}

type TenantService struct {
	Client *apiclient.Client
}

// Get fetches the tenant the client is scoped to.
func (s *TenantService) Get(ctx context.Context) (PlatformTenant, error) {
	u, err := s.Client.URL().API().Tenant().Build()
	if err != nil {
		return PlatformTenant{}, err
	}
	return apiclient.Do[PlatformTenant](ctx, s.Client, http.MethodGet, u, nil)
}

func (s *TenantService) Patch(ctx context.Context, req PatchTenantRequest) (PlatformTenant, error) {
	u, err := s.Client.URL().API().Tenant().Build()
	if err != nil {
		return PlatformTenant{}, err
	}
	return apiclient.Do[PlatformTenant](ctx, s.Client, http.MethodPatch, u, req)
}
