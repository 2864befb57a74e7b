package sqlite

import (
	"context"
	"fmt"

	"github.com/loamworks/realmctl/internal/admin/domain"
)

type tenantsRepo struct {
	q      querier
	withTx func(ctx context.Context, fn func(q querier) error) error
}

func (r *tenantsRepo) UpsertTenantAndRealm(
	ctx context.Context,
	tenant domain.Tenant,
	realm domain.Realm,
) error {
	return r.withTx(ctx, func(q querier) error {
		if _, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO tenants (id) VALUES (?)`, tenant.ID,
		); err != nil {
			return fmt.Errorf("upsert tenant: %w", err)
		}

		if _, err := q.ExecContext(ctx,
			`INSERT OR REPLACE INTO realms
				(id, tenant_id, application_id, client_id, client_secret,
				 open_id_configuration_url, auth_base_url, api_base_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			realm.ID, realm.TenantID, realm.ApplicationID, realm.ClientID,
			realm.ClientSecret, realm.OpenIDConfigurationURL,
			realm.AuthBaseURL, realm.APIBaseURL,
		); err != nil {
			return fmt.Errorf("upsert realm: %w", err)
		}
		return nil
	})
}

func (r *tenantsRepo) GetTenant(ctx context.Context, id string) (domain.Tenant, error) {
	var t domain.Tenant
	err := r.q.QueryRowContext(ctx,
		`SELECT id FROM tenants WHERE id = ?`, id,
	).Scan(&t.ID)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tenantsRepo) GetRealm(ctx context.Context, tenantID, realmID string) (domain.Realm, error) {
	var realm domain.Realm
	err := r.q.QueryRowContext(ctx,
		`SELECT id, tenant_id, application_id, client_id, client_secret,
		        open_id_configuration_url, auth_base_url, api_base_url
		 FROM realms WHERE tenant_id = ? AND id = ?`,
		tenantID, realmID,
	).Scan(
		&realm.ID, &realm.TenantID, &realm.ApplicationID, &realm.ClientID,
		&realm.ClientSecret, &realm.OpenIDConfigurationURL,
		&realm.AuthBaseURL, &realm.APIBaseURL,
	)
	if err != nil {
		return domain.Realm{}, mapNotFound(err)
	}
	return realm, nil
}

func (r *tenantsRepo) ListTenantsWithRealms(ctx context.Context) ([]domain.TenantWithRealms, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id FROM tenants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TenantWithRealms
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID); err != nil {
			return nil, err
		}
		out = append(out, domain.TenantWithRealms{Tenant: t})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		realms, err := r.listRealms(ctx, out[i].Tenant.ID)
		if err != nil {
			return nil, err
		}
		out[i].Realms = realms
	}
	return out, nil
}

func (r *tenantsRepo) listRealms(ctx context.Context, tenantID string) ([]domain.Realm, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, tenant_id, application_id, client_id, client_secret,
		        open_id_configuration_url, auth_base_url, api_base_url
		 FROM realms WHERE tenant_id = ? ORDER BY id`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var realms []domain.Realm
	for rows.Next() {
		var realm domain.Realm
		if err := rows.Scan(
			&realm.ID, &realm.TenantID, &realm.ApplicationID, &realm.ClientID,
			&realm.ClientSecret, &realm.OpenIDConfigurationURL,
			&realm.AuthBaseURL, &realm.APIBaseURL,
		); err != nil {
			return nil, err
		}
		realms = append(realms, realm)
	}
	return realms, rows.Err()
}

// DeleteTenantRealmPair removes the realm, the tenant when it has no realms
// left, and the default selection when it pointed at the pair. The three
// effects are one transaction; a dangling default after a delete is a bug.
func (r *tenantsRepo) DeleteTenantRealmPair(ctx context.Context, tenantID, realmID string) error {
	return r.withTx(ctx, func(q querier) error {
		if _, err := q.ExecContext(ctx,
			`DELETE FROM realms WHERE tenant_id = ? AND id = ?`,
			tenantID, realmID,
		); err != nil {
			return fmt.Errorf("delete realm: %w", err)
		}

		var remaining int64
		if err := q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM realms WHERE tenant_id = ?`, tenantID,
		).Scan(&remaining); err != nil {
			return fmt.Errorf("count remaining realms: %w", err)
		}

		if remaining == 0 {
			if _, err := q.ExecContext(ctx,
				`DELETE FROM tenants WHERE id = ?`, tenantID,
			); err != nil {
				return fmt.Errorf("delete tenant: %w", err)
			}
		}

		if _, err := q.ExecContext(ctx,
			`DELETE FROM defaults WHERE tenant_id = ? AND realm_id = ?`,
			tenantID, realmID,
		); err != nil {
			return fmt.Errorf("clear default selection: %w", err)
		}
		return nil
	})
}
