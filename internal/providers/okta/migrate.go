package okta

import (
	"context"
	"net/http"
	"strings"

	"github.com/loamworks/realmctl/internal/admin/service"
	"github.com/loamworks/realmctl/pkg/apiclient"
	"github.com/loamworks/realmctl/pkg/slogx"
)

// MigrateResult summarises one fast-migrate run.
type MigrateResult struct {
	Created int
	Skipped int
}

// FastMigrate creates a platform identity for every given Okta user. Users
// whose username already exists in the realm are skipped rather than failing
// the run, so re-running after a partial migration is safe.
func FastMigrate(ctx context.Context, identities *service.IdentityService, users []User) (MigrateResult, error) {
	log := slogx.FromContext(ctx)

	var result MigrateResult
	for _, u := range users {
		username := usernameFor(u)
		if username == "" {
			log.Warn("skipping okta user without usable login", "okta_user_id", u.ID)
			result.Skipped++
			continue
		}

		created, err := identities.Create(ctx, service.CreateIdentityRequest{
			Identity: service.Identity{
				DisplayName: u.DisplayName,
				Traits: service.IdentityTraits{
					Type:                "traits_v0",
					Username:            username,
					PrimaryEmailAddress: u.Email,
					ExternalID:          u.ID,
				},
			},
		})
		if err != nil {
			if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.StatusCode == http.StatusConflict {
				log.Info("identity already exists, skipping", "username", username)
				result.Skipped++
				continue
			}
			return result, err
		}

		log.Info("created identity", "identity_id", created.ID, "username", username)
		result.Created++
	}

	return result, nil
}

// usernameFor derives the platform username from an Okta user. Okta logins
// are email shaped; the local part keeps usernames short while the email
// trait preserves the full address.
func usernameFor(u User) string {
	login := strings.TrimSpace(u.Login)
	if login == "" {
		login = strings.TrimSpace(u.Email)
	}
	if at := strings.IndexByte(login, '@'); at > 0 {
		return login[:at]
	}
	return login
}
