package database

// Config holds configuration for the run-history database.
type Config struct {
	// Path is the SQLite database file. ":memory:" keeps history per-process.
	Path string `mapstructure:"path" default:"data/history.db"`
}
