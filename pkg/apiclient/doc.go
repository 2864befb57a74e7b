// Package apiclient is the authenticated HTTP client for the identity
// platform's administrative API. It owns the token lifecycle for one
// tenant/realm scope (client-credentials exchange, persistent caching,
// expiry-aware reuse), structured endpoint URL composition, and a generic
// paginated request engine shared by every list operation.
//
// A Client is bound to an explicit Scope resolved once per CLI invocation;
// nothing in this package consults the default selection ambiently. Calls are
// made sequentially and never retried: every failure propagates to the caller
// as a typed error.
package apiclient
