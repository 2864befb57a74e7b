package sqlite

import (
	"context"

	"github.com/loamworks/realmctl/internal/admin/domain"
)

type defaultsRepo struct {
	q querier
}

func (r *defaultsRepo) GetDefault(ctx context.Context) (domain.DefaultSelection, error) {
	var sel domain.DefaultSelection
	err := r.q.QueryRowContext(ctx,
		`SELECT tenant_id, realm_id FROM defaults WHERE id = 1`,
	).Scan(&sel.TenantID, &sel.RealmID)
	if err != nil {
		return domain.DefaultSelection{}, mapNotFound(err)
	}
	return sel, nil
}

func (r *defaultsRepo) SetDefault(ctx context.Context, tenantID, realmID string) error {
	// id is pinned to 1 so there is only ever one selection.
	_, err := r.q.ExecContext(ctx,
		`INSERT OR REPLACE INTO defaults (id, tenant_id, realm_id) VALUES (1, ?, ?)`,
		tenantID, realmID,
	)
	return err
}
