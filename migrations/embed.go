// Package migrations ships the schema scripts inside the binary, so
// the daemon never depends on .sql files being present on disk.
package migrations

import (
	"embed"

	"github.com/ferment8/brauhaus-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
