package pkg

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-derived settings cmd/api and
// cmd/lambda both need to stand up a server.
type Config struct {
	// DatabaseDriver is "sqlite3" or "postgres".
	DatabaseDriver string
	// SqlitePath is used when DatabaseDriver == "sqlite3".
	SqlitePath string
	// PostgresDSN is used when DatabaseDriver == "postgres".
	PostgresDSN string
	// Addr is the listen address for cmd/api (":8080" style).
	Addr string
}

// LoadConfig reads a .env file if present (local development; a
// missing file is not an error) and then layers real environment
// variables on top, so deployed environments always win.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseDriver: "sqlite3",
		SqlitePath:     "database/courses.db",
		Addr:           ":8080",
	}

	if v := os.Getenv("GRADPATH_DB_DRIVER"); v != "" {
		cfg.DatabaseDriver = v
	}
	if v := os.Getenv("GRADPATH_SQLITE_PATH"); v != "" {
		cfg.SqlitePath = v
	}
	if v := os.Getenv("GRADPATH_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}

	return cfg
}

// OpenCatalogSource opens whichever CatalogSource the config selects.
func (c Config) OpenCatalogSource() (CatalogSource, error) {
	switch c.DatabaseDriver {
	case "postgres":
		return NewPostgresRepository(context.Background(), c.PostgresDSN)
	default:
		return NewRepository(c.SqlitePath)
	}
}
