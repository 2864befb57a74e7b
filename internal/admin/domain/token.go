package domain

import "time"

// Token is a cached bearer credential for one tenant/realm scope. The
// (TenantID, RealmID) pair uniquely identifies the most recent credential for
// that scope; a fresher exchange replaces the row wholesale.
type Token struct {
	AccessToken   string
	ExpiresAt     int64 // epoch seconds
	TenantID      string
	RealmID       string
	ApplicationID string
}

// ExpiresWithin reports whether the token expires before now + margin.
// A zero or past ExpiresAt always reports true.
func (t Token) ExpiresWithin(margin time.Duration) bool {
	return time.Now().Add(margin).Unix() >= t.ExpiresAt
}
