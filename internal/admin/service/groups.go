package service

import (
	"context"
	"net/http"

	"github.com/loamworks/realmctl/pkg/apiclient"
)

// Group is a named collection of identities within a realm.
type Group struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

type CreateGroupRequest struct {
	Group Group `json:"group"`
}

type PatchGroupRequest struct {
	Group Group `json:"group"`
}

type Groups struct {
	Groups    []Group `json:"groups"`
	TotalSize int     `json:"total_size"`
}

type ListGroupsResponse struct {
	Groups        []Group `json:"groups"`
	TotalSize     int     `json:"total_size,omitempty"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

func (r ListGroupsResponse) PageItems() []Group { return r.Groups }
func (r ListGroupsResponse) NextToken() string  { return r.NextPageToken }

// GroupMembersRequest names the identities to add to or remove from a group.
type GroupMembersRequest struct {
	IdentityIDs []string `json:"identity_ids"`
}

type GroupService struct {
	Client *apiclient.Client
}

func (s *GroupService) Create(ctx context.Context, req CreateGroupRequest) (Group, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Path("groups").Build()
	if err != nil {
		return Group{}, err
	}
	return apiclient.Do[Group](ctx, s.Client, http.MethodPost, u, req)
}

func (s *GroupService) Get(ctx context.Context, id string) (Group, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Path("groups", id).Build()
	if err != nil {
		return Group{}, err
	}
	return apiclient.Do[Group](ctx, s.Client, http.MethodGet, u, nil)
}

func (s *GroupService) List(ctx context.Context, limit int) (Groups, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Path("groups").Build()
	if err != nil {
		return Groups{}, err
	}

	items, total, err := apiclient.Paginate[Group, ListGroupsResponse](
		ctx, s.Client, http.MethodGet, u, nil, limit,
	)
	if err != nil {
		return Groups{}, err
	}
	return Groups{Groups: items, TotalSize: total}, nil
}

func (s *GroupService) Patch(ctx context.Context, id string, req PatchGroupRequest) (Group, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Path("groups", id).Build()
	if err != nil {
		return Group{}, err
	}
	return apiclient.Do[Group](ctx, s.Client, http.MethodPatch, u, req)
}

func (s *GroupService) Delete(ctx context.Context, id string) error {
	u, err := s.Client.URL().API().Tenant().Realm().Path("groups", id).Build()
	if err != nil {
		return err
	}
	_, err = apiclient.Do[struct{}](ctx, s.Client, http.MethodDelete, u, nil)
	return err
}

// ListMembers returns the identities belonging to a group.
func (s *GroupService) ListMembers(ctx context.Context, id string, limit int) (Identities, error) {
	u, err := s.Client.URL().API().Tenant().Realm().Path("groups", id, "members").Build()
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

func (s *GroupService) AddMembers(ctx context.Context, id string, req GroupMembersRequest) error {
	u, err := s.Client.URL().API().Tenant().Realm().Path("groups", id, "members").Build()
	if err != nil {
		return err
	}
	_, err = apiclient.Do[struct{}](ctx, s.Client, http.MethodPost, u, req)
	return err
}

func (s *GroupService) DeleteMembers(ctx context.Context, id string, req GroupMembersRequest) error {
	u, err := s.Client.URL().API().Tenant().Realm().Path("groups", id, "members").Build()
	if err != nil {
		return err
	}
	_, err = apiclient.Do[struct{}](ctx, s.Client, http.MethodDelete, u, req)
	return err
}
