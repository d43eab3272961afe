// Package migrations embeds the goose schema migrations for each supported
// SQL dialect.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Dir returns the migration directory for driver ("postgres" or "sqlite").
func Dir(driver string) (fs.FS, error) {
	switch driver {
	case "postgres", "sqlite":
		return fs.Sub(FS, driver)
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}
