// Package gymcontrol carries the assets embedded into the binary.
package gymcontrol

import "embed"

// MigrationsFS holds the SQL migrations applied at startup.
//
//go:embed migrations
var MigrationsFS embed.FS

// StaticFS holds the assets served under /static/.
//
//go:embed web/static
var StaticFS embed.FS
