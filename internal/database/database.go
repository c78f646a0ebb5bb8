package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Registra el driver sqlite puro Go bajo el nombre "sqlite".
	_ "modernc.org/sqlite"
)

// Conectar abre la base según el DSN: PostgreSQL en producción (Render
// entrega postgres://), SQLite local para desarrollo y tests.
func Conectar(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		},
	)
}
