package sqlite

import (
	"context"

	"github.com/loamworks/realmctl/internal/admin/domain"
)

type tokensRepo struct {
	q querier
}

func (r *tokensRepo) GetToken(ctx context.Context, tenantID, realmID string) (domain.Token, error) {
	var t domain.Token
	err := r.q.QueryRowContext(ctx,
		`SELECT access_token, expires_at, tenant_id, realm_id, application_id
		 FROM tokens WHERE tenant_id = ? AND realm_id = ?`,
		tenantID, realmID,
	).Scan(&t.AccessToken, &t.ExpiresAt, &t.TenantID, &t.RealmID, &t.ApplicationID)
	if err != nil {
		return domain.Token{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) SetToken(ctx context.Context, token domain.Token) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR REPLACE INTO tokens
			(access_token, expires_at, tenant_id, realm_id, application_id)
		 VALUES (?, ?, ?, ?, ?)`,
		token.AccessToken, token.ExpiresAt, token.TenantID, token.RealmID,
		token.ApplicationID,
	)
	return err
}

func (r *tokensRepo) DeleteToken(ctx context.Context, tenantID, realmID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM tokens WHERE tenant_id = ? AND realm_id = ?`,
		tenantID, realmID,
	)
	return err
}
