package service

import (
	"context"
	"net/http"

	"github.com/loamworks/realmctl/pkg/apiclient"
)

// Role is an authorization role defined on a resource server.
type Role struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

type Roles struct {
	Roles     []Role `json:"roles"`
	TotalSize int    `json:"total_size"`
}

type ListRolesResponse struct {
	Roles         []Role `json:"roles"`
	TotalSize     int    `json:"total_size,omitempty"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

func (r ListRolesResponse) PageItems() []Role { return r.Roles }
func (r ListRolesResponse) NextToken() string { return r.NextPageToken }

type RoleService struct {
	Client *apiclient.Client
}

// List returns the roles defined on a resource server.
func (s *RoleService) List(ctx context.Context, resourceServerID string, limit int) (Roles, error) {
	u, err := s.Client.URL().API().Tenant().Realm().
		Path("resource-servers", resourceServerID, "roles").
		Build()
	if err != nil {
		return Roles{}, err
	}

	items, total, err := apiclient.Paginate[Role, ListRolesResponse](
		ctx, s.Client, http.MethodGet, u, nil, limit,
	)
	if err != nil {
		return Roles{}, err
	}
	return Roles{Roles: items, TotalSize: total}, nil
}
