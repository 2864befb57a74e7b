package onelogin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/loamworks/realmctl/internal/admin/service"
	"github.com/loamworks/realmctl/pkg/apiclient"
	"github.com/loamworks/realmctl/pkg/slogx"
)

// bookmarkPayload is the SSO tile payload for a migrated OneLogin app: a
// plain link out to the app's existing launch URL.
type bookmarkPayload struct {
	Type      string `json:"type"`
	LoginLink string `json:"login_link"`
	Icon      string `json:"icon,omitempty"`
}

// MigrateResult summarises one fast-migrate run.
type MigrateResult struct {
	SSOConfigID string
	Assigned    int
}

// MigrateApplication creates a bookmark SSO tile for one OneLogin app and
// grants access to the identities whose email matches a user assigned to the
// app in OneLogin. Identities without a matching email are left untouched.
func MigrateApplication(
	ctx context.Context,
	ssoConfigs *service.SSOConfigService,
	identities *service.IdentityService,
	app Application,
) (MigrateResult, error) {
	log := slogx.FromContext(ctx)

	payload, err := json.Marshal(bookmarkPayload{
		Type:      "bookmark",
		LoginLink: app.LoginLink,
		Icon:      app.IconURL,
	})
	if err != nil {
		return MigrateResult{}, fmt.Errorf("failed to encode sso payload: %w", err)
	}

	created, err := ssoConfigs.Create(ctx, service.CreateSSOConfigRequest{
		SSOConfig: service.SSOConfig{
			DisplayName: app.Name,
			IsMigrated:  true,
			Payload:     payload,
		},
	})
	if err != nil {
		return MigrateResult{}, err
	}
	log.Info("created sso config", "sso_config_id", created.ID, "app", app.Name)

	existing, err := identities.List(ctx, apiclient.Filter{}, 0)
	if err != nil {
		return MigrateResult{}, err
	}

	matched := matchIdentities(app.AssignedUsers, existing.Identities)
	if len(matched) == 0 {
		return MigrateResult{SSOConfigID: created.ID}, nil
	}

	err = ssoConfigs.AddIdentities(ctx, created.ID, service.SSOConfigIdentitiesRequest{
		IdentityIDs: matched,
	})
	if err != nil {
		return MigrateResult{}, err
	}

	log.Info("assigned identities to sso config",
		"sso_config_id", created.ID,
		"count", len(matched),
	)
	return MigrateResult{SSOConfigID: created.ID, Assigned: len(matched)}, nil
}

// matchIdentities returns the ids of identities whose primary email matches
// one of the app's assigned OneLogin users.
func matchIdentities(users []User, identities []service.Identity) []string {
	emails := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.Email != "" {
			emails[u.Email] = struct{}{}
		}
	}

	var ids []string
	for _, identity := range identities {
		if _, ok := emails[identity.Traits.PrimaryEmailAddress]; ok {
			ids = append(ids, identity.ID)
		}
	}
	return ids
}
