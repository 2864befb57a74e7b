package domain

// Tenant is a top-level customer account in the identity platform. Locally we
// only track its id; everything else lives server-side.
type Tenant struct {
	ID string `json:"id"`
}

// Realm is an isolated configuration scope within a tenant. The stored record
// carries the credentials and endpoint base URLs needed to authenticate and
// issue API calls against that realm.
type Realm struct {
	ID                     string `json:"id"`
	TenantID               string `json:"tenant_id"`
	ApplicationID          string `json:"application_id"`
	ClientID               string `json:"client_id"`
	ClientSecret           string `json:"client_secret"`
	OpenIDConfigurationURL string `json:"open_id_configuration_url"`
	AuthBaseURL            string `json:"auth_base_url"`
	APIBaseURL             string `json:"api_base_url"`
}

// TenantWithRealms pairs a tenant with all of its locally stored realms.
type TenantWithRealms struct {
	Tenant Tenant
	Realms []Realm
}

// DefaultSelection identifies the tenant/realm pair commands act on when none
// is explicitly specified. At most one exists at a time.
type DefaultSelection struct {
	TenantID string
	RealmID  string
}
