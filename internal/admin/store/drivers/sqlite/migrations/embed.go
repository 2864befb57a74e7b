// Package migrations embeds the SQL migration files so they compile into the
// binary and can be applied with the iofs source driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
