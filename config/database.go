package config

import "strings"

// DBConfig contains SQLite database configuration.
type DBConfig struct {
	// Path is the SQLite database file. Use ":memory:" for a throwaway store.
	Path string `env:"PATH" envDefault:"talentflow.db"`

	// BusyTimeoutMS is how long a connection waits on a locked database
	// before giving up, in milliseconds.
	BusyTimeoutMS int `env:"BUSY_TIMEOUT_MS" envDefault:"5000"`

	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// Sanitize applies guardrails to database configuration values.
func (d *DBConfig) Sanitize() {
	if strings.TrimSpace(d.Path) == "" {
		d.Path = "talentflow.db"
	}
	if d.BusyTimeoutMS < 0 {
		d.BusyTimeoutMS = 0
	}
}
